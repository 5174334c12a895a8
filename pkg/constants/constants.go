// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package constants

import "time"

const (
	// MinCompatibilityScore is the minimum-viability threshold, lower scores are noise.
	MinCompatibilityScore = 50.0

	// MaxRankedResults caps every ranked list.
	MaxRankedResults = 10

	// DefaultScoringWorkers bounds the fan-out of one ranking call.
	DefaultScoringWorkers = 8

	DefaultAutoMatchMaxGroups = 10
	DefaultAutoMatchGroupSize = 5

	DefaultRequestTTL     = 24 * time.Hour
	DefaultResultCacheTTL = 30 * time.Second
)

// Factor names as exposed in CompatibilityResult.Breakdown.
const (
	FactorSkill        = "skill"
	FactorRole         = "role"
	FactorRegion       = "region"
	FactorAvailability = "availability"
	FactorLanguage     = "language"
)

// Factor weights, they sum to 100.
const (
	WeightSkill        = 35.0
	WeightRole         = 25.0
	WeightRegion       = 15.0
	WeightAvailability = 15.0
	WeightLanguage     = 10.0
)

// ReasonThreshold is the sub-score a factor must exceed to explain the match.
const ReasonThreshold = 70.0

const (
	FindTeamsFunction     = "findTeams"
	FindTeammatesFunction = "findTeammates"
	RankTeamsFunction     = "rankTeams"
	RankRequestsFunction  = "rankRequests"
	AutoMatchFunction     = "autoMatch"

	// excluded candidate reason constants.
	ExcludedReasonCapacity     = "excluded_capacity_guard"
	ExcludedReasonInactive     = "excluded_request_inactive"
	ExcludedReasonExpired      = "excluded_request_expired"
	ExcludedReasonSuperseded   = "excluded_request_superseded"
	ExcludedReasonPreFilter    = "excluded_pre_filter"
	ExcludedReasonBelowMinimum = "excluded_below_minimum_score"
	ExcludedReasonOverCap      = "excluded_over_result_cap"
)
