// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package matchmaker provides the collaborator interfaces of the team matcher engine.
// The engine is pure computation: candidates are read through CandidateRepository
// and ranked results may be kept by a ResultCache owned by the caller.
package matchmaker

import (
	"context"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

/*
CandidateRepository is the snapshot source of candidates. Implementations already reflect the persisted
membership and capacity state at call time; the engine trusts the snapshot and only re-applies the
capacity guard.

Both methods return an empty slice, not an error, when nothing matches the filter.
*/
type CandidateRepository interface {
	// GetTeams returns the teams of a game that pass the filter.
	GetTeams(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.Team, error)

	// GetMatchRequests returns the match requests of a game that pass the filter.
	GetMatchRequests(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.MatchRequest, error)
}

// ResultCache keeps ranked results for a short time. The cache owns its ttl.
type ResultCache interface {
	Get(key string) ([]models.CompatibilityResult, bool)
	Set(key string, results []models.CompatibilityResult)
}
