// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"
	"sync"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// StubCandidateRepository returns its fixed pools and records the last filter it was called with.
type StubCandidateRepository struct {
	Teams    []models.Team
	Requests []models.MatchRequest
	Err      error

	mu         sync.Mutex
	LastGameID string
	LastFilter models.CandidateFilter
	Calls      int
}

func (s *StubCandidateRepository) GetTeams(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.Team, error) {
	s.record(gameID, filter)
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.Team(nil), s.Teams...), nil
}

func (s *StubCandidateRepository) GetMatchRequests(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.MatchRequest, error) {
	s.record(gameID, filter)
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]models.MatchRequest(nil), s.Requests...), nil
}

func (s *StubCandidateRepository) record(gameID string, filter models.CandidateFilter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls++
	s.LastGameID = gameID
	s.LastFilter = filter
}
