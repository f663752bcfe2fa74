package model

import (
	"errors"
	"fmt"
)

// CheckStatus is the closed set of outcomes GitHub reports for a status
// context, a check run conclusion, or a commit's status rollup.
type CheckStatus int

const (
	CheckStatusError CheckStatus = iota + 1
	CheckStatusExpected
	CheckStatusFailure
	CheckStatusPending
	CheckStatusSuccess
	CheckStatusActionRequired
	CheckStatusTimedOut
	CheckStatusCancelled
	CheckStatusNeutral
	CheckStatusSkipped
	CheckStatusStartupFailure
	CheckStatusStale
)

// checkStatusCodes maps the upstream codes, exactly as GitHub spells them.
var checkStatusCodes = map[string]CheckStatus{
	"ERROR":           CheckStatusError,
	"EXPECTED":        CheckStatusExpected,
	"FAILURE":         CheckStatusFailure,
	"PENDING":         CheckStatusPending,
	"SUCCESS":         CheckStatusSuccess,
	"ACTION_REQUIRED": CheckStatusActionRequired,
	"CANCELLED":       CheckStatusCancelled, //nolint:misspell // GitHub API uses British "cancelled"
	"NEUTRAL":         CheckStatusNeutral,
	"SKIPPED":         CheckStatusSkipped,
	"STALE":           CheckStatusStale,
	"STARTUP_FAILURE": CheckStatusStartupFailure,
	"TIMED_OUT":       CheckStatusTimedOut,
}

// ClassificationError reports a status code outside the known vocabulary.
type ClassificationError struct {
	Code string
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("got unexpected value %s as a CheckStatus", e.Code)
}

// ErrCheckStatusNotString is returned by CheckStatusFromValue for non-string input.
var ErrCheckStatusNotString = errors.New("value passed to CheckStatus was not a string")

// ParseCheckStatus classifies an upstream code. Matching is exact and
// case-sensitive; anything else is a *ClassificationError.
func ParseCheckStatus(code string) (CheckStatus, error) {
	status, ok := checkStatusCodes[code]
	if !ok {
		return 0, &ClassificationError{Code: code}
	}
	return status, nil
}

// CheckStatusFromValue classifies a decoded JSON value, which must be a string.
func CheckStatusFromValue(v any) (CheckStatus, error) {
	code, ok := v.(string)
	if !ok {
		return 0, ErrCheckStatusNotString
	}
	return ParseCheckStatus(code)
}

// String returns the upstream code for s.
func (s CheckStatus) String() string {
	for code, status := range checkStatusCodes {
		if status == s {
			return code
		}
	}
	return fmt.Sprintf("CheckStatus(%d)", int(s))
}
