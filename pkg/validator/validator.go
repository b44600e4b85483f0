package validator

import "regexp"

var (
	stepNameRegex *regexp.Regexp
	slotNameRegex *regexp.Regexp
)

// ValidateStepName accepts names usable as platform step identifiers.
func ValidateStepName(name string) bool {
	return stepNameRegex.MatchString(name)
}

// ValidateSlotName accepts names usable as datastore path segments.
func ValidateSlotName(name string) bool {
	return slotNameRegex.MatchString(name)
}

func init() {
	stepNameRegex = regexp.MustCompile(`^[[:alpha:]][\w-]*$`)
	slotNameRegex = regexp.MustCompile(`^[[:alpha:]][\w]*$`)
}
