// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is the kind of every malformed request, team or argument.
	ErrInvalidInput = errors.New("invalid input")

	// ErrComputationInvariantViolation means the scoring tables are broken,
	// e.g. factor weights that no longer sum to 100.
	ErrComputationInvariantViolation = errors.New("computation invariant violation")
)

// ValidationError describes which field made the input invalid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationError builds an InvalidInput error for field.
func NewValidationError(field, message string) error {
	return newValidationError(field, message)
}

var (
	ErrMissingRequestID        = newValidationError("request_id", "request id is required")
	ErrMissingUserID           = newValidationError("user_id", "user id is required")
	ErrMissingGameID           = newValidationError("game_id", "game id is required")
	ErrMissingTeamID           = newValidationError("team_id", "team id is required")
	ErrUnknownSkillTier        = newValidationError("skill_tier", "skill tier should be one of beginner, intermediate, advanced, expert")
	ErrUnknownTimeSlot         = newValidationError("availability", "time slot should be one of morning, afternoon, evening, night, flexible")
	ErrUnknownRequestStatus    = newValidationError("status", "request status should be one of active, matched, cancelled, expired")
	ErrUnknownTeamStatus       = newValidationError("status", "team status should be one of recruiting, full, active, disbanded")
	ErrUnknownRecruitmentState = newValidationError("recruitment", "recruitment state should be open or closed")
	ErrNegativeCreatedAt       = newValidationError("created_at", "creation timestamp cannot be negative")
	ErrNegativeCapacity        = newValidationError("capacity", "team sizes cannot be negative")
	ErrZeroMaxSize             = newValidationError("max_size", "max size should be at least 1")
	ErrCurrentExceedsMax       = newValidationError("current_size", "current size should not exceed max size")
	ErrNegativeRoleCount       = newValidationError("needed_roles", "needed role count cannot be negative")
	ErrInvalidGroupSize        = newValidationError("group_size", "group size should be at least 2")
	ErrInvalidMaxGroups        = newValidationError("max_groups", "max groups should be at least 1")
	ErrMixedGames              = newValidationError("game_id", "all requests should belong to the same game")
	ErrDuplicateUser           = newValidationError("user_id", "only one request per user is allowed")
)

var validationErrorCodeMap = map[*ValidationError]int{
	ErrMissingRequestID:        510201,
	ErrMissingUserID:           510202,
	ErrMissingGameID:           510203,
	ErrMissingTeamID:           510204,
	ErrUnknownSkillTier:        510205,
	ErrUnknownTimeSlot:         510206,
	ErrUnknownRequestStatus:    510207,
	ErrUnknownTeamStatus:       510208,
	ErrUnknownRecruitmentState: 510209,
	ErrNegativeCreatedAt:       510210,
	ErrNegativeCapacity:        510211,
	ErrZeroMaxSize:             510212,
	ErrCurrentExceedsMax:       510213,
	ErrNegativeRoleCount:       510214,
	ErrInvalidGroupSize:        510215,
	ErrInvalidMaxGroups:        510216,
	ErrMixedGames:              510217,
	ErrDuplicateUser:           510218,
}

// ValidationErrorCode returns a code for the error.
// It returns 20002 if the error is not a registered validation error.
func ValidationErrorCode(err error) int {
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		return 20002
	}
	code, ok := validationErrorCodeMap[validationErr]
	if !ok {
		return 20002
	}
	return code
}
