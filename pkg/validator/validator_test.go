package validator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepNameRegex(t *testing.T) {
	testCases := map[string]bool{
		"dataprep":         true,
		"train-model":      true,
		"train_model123":   true,
		"    data  prep":   false,
		"d":                true,
		"000prep":          false,
		"prep000":          true,
		"_prep":            false,
		"a_prep":           true,
	}

	for testCase, expectedMatch := range testCases {
		actualMatch := ValidateStepName(testCase)
		assert.Equal(t, expectedMatch, actualMatch, fmt.Sprintf("unexpected step name: %s", testCase))
	}
}

func TestSlotNameRegex(t *testing.T) {
	testCases := map[string]bool{
		"training_data": true,
		"training-data": false,
		"data1":         true,
		"1data":         false,
	}

	for testCase, expectedMatch := range testCases {
		actualMatch := ValidateSlotName(testCase)
		assert.Equal(t, expectedMatch, actualMatch, fmt.Sprintf("unexpected slot name: %s", testCase))
	}
}
