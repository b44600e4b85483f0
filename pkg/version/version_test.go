package version

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	SetComponent("trellis")

	expected := fmt.Sprintf("Trellis/%s trellis/%s (%s)", Version(), Version(), runtime.GOOS)
	assert.Equal(t, expected, UserAgent())

	SetComponent("trellisd")
	assert.Contains(t, UserAgent(), "trellisd/")

	SetComponent("trellis")
}
