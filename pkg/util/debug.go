package util

import (
	"os"
	"strings"
)

var (
	isDebug *bool
)

func IsDebug() bool {
	if isDebug == nil {
		trellisDebug := os.Getenv("TRELLIS_DEBUG")
		d := trellisDebug == "1" || strings.EqualFold(trellisDebug, "true")
		isDebug = &d
	}

	return *isDebug
}
