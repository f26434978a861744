// Package validation holds the pure length checks shared by the API
// handlers and the review state machine. Lengths are counted in runes
// after trimming surrounding whitespace.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Bounds for source text submitted for generation.
const (
	MinSourceLen = 1000
	MaxSourceLen = 10000
)

// Bounds for card fields edited during review.
const (
	MinQuestionLen = 3
	MaxQuestionLen = 200
	MinAnswerLen   = 3
	MaxAnswerLen   = 2000
)

// SourceState classifies a source text against its bounds.
type SourceState string

const (
	SourceBelowMin SourceState = "below-min"
	SourceValid    SourceState = "valid"
	SourceAboveMax SourceState = "above-max"
)

// SourceTextResult is the outcome of SourceText.
type SourceTextResult struct {
	Count   int
	State   SourceState
	IsValid bool
	Message string
}

// FieldResult is the outcome of Question and Answer.
type FieldResult struct {
	IsValid bool
	Error   string
	Count   int
	Min     int
	Max     int
}

// Len returns the rune count of s after trimming.
func Len(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// SourceText checks text against the default generation bounds.
func SourceText(text string) SourceTextResult {
	return SourceTextWithBounds(text, MinSourceLen, MaxSourceLen)
}

// SourceTextWithBounds checks text against [minLen, maxLen].
func SourceTextWithBounds(text string, minLen, maxLen int) SourceTextResult {
	count := Len(text)

	switch {
	case count < minLen:
		return SourceTextResult{
			Count:   count,
			State:   SourceBelowMin,
			Message: fmt.Sprintf("Minimum %d characters required", minLen),
		}
	case count > maxLen:
		return SourceTextResult{
			Count:   count,
			State:   SourceAboveMax,
			Message: fmt.Sprintf("Maximum %d characters allowed", maxLen),
		}
	}

	return SourceTextResult{
		Count:   count,
		State:   SourceValid,
		IsValid: true,
		Message: fmt.Sprintf("%d / %d characters", count, maxLen),
	}
}

// Question checks a card question.
func Question(s string) FieldResult {
	return checkField("Question", s, MinQuestionLen, MaxQuestionLen)
}

// Answer checks a card answer.
func Answer(s string) FieldResult {
	return checkField("Answer", s, MinAnswerLen, MaxAnswerLen)
}

func checkField(label, s string, minLen, maxLen int) FieldResult {
	res := FieldResult{Count: Len(s), Min: minLen, Max: maxLen}

	switch {
	case res.Count < minLen:
		res.Error = fmt.Sprintf("%s must be at least %d characters", label, minLen)
	case res.Count > maxLen:
		res.Error = fmt.Sprintf("%s must not exceed %d characters", label, maxLen)
	default:
		res.IsValid = true
	}

	return res
}
