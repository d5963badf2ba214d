package intelligence

import (
	"strings"
	"unicode/utf8"
)

// MinCurriculumLength is the minimum character count for generated text.
const MinCurriculumLength = 500

// Rejection names the quality gate a candidate failed.
type Rejection string

const (
	RejectBlank       Rejection = "blank"
	RejectPlaceholder Rejection = "placeholder"
	RejectTooShort    Rejection = "too_short"
)

// CheckCurriculumContent returns the first failed quality gate, or "" if
// candidate is acceptable.
func CheckCurriculumContent(candidate string) Rejection {
	if strings.TrimSpace(candidate) == "" {
		return RejectBlank
	}
	if strings.Contains(strings.ToLower(candidate), "placeholder") {
		return RejectPlaceholder
	}
	if utf8.RuneCountInString(candidate) < MinCurriculumLength {
		return RejectTooShort
	}
	return ""
}

// ValidateCurriculumContent reports whether candidate passes every gate.
func ValidateCurriculumContent(candidate string) bool {
	return CheckCurriculumContent(candidate) == ""
}
