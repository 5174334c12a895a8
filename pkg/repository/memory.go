// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package repository holds an in-memory snapshot of teams and match requests.
// Persistence belongs to the services owning those records; they push snapshots here.
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/elliotchance/pie/v2"
	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// Snapshot is the document loaded by LoadSnapshot.
type Snapshot struct {
	Teams    []models.Team         `json:"teams"`
	Requests []models.MatchRequest `json:"requests"`
}

type MemoryRepository struct {
	mu       sync.RWMutex
	teams    map[string][]models.Team
	requests map[string][]models.MatchRequest
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		teams:    map[string][]models.Team{},
		requests: map[string][]models.MatchRequest{},
	}
}

// Replace swaps the whole snapshot. Invalid records are rejected before anything is swapped.
func (m *MemoryRepository) Replace(snapshot Snapshot) error {
	teams := make(map[string][]models.Team)
	for i := range snapshot.Teams {
		team := snapshot.Teams[i]
		if err := team.Validate(); err != nil {
			return fmt.Errorf("team %q: %w", team.TeamID, err)
		}
		teams[team.GameID] = append(teams[team.GameID], team)
	}

	requests := make(map[string][]models.MatchRequest)
	for i := range snapshot.Requests {
		request := snapshot.Requests[i]
		if err := request.Validate(); err != nil {
			return fmt.Errorf("match request %q: %w", request.RequestID, err)
		}
		requests[request.GameID] = append(requests[request.GameID], request)
	}
	for gameID, gameRequests := range requests {
		activeUsers := make(map[string]string, len(gameRequests))
		for _, request := range gameRequests {
			if !request.IsActive() {
				continue
			}
			if other, ok := activeUsers[request.UserID]; ok {
				return fmt.Errorf("match requests %q and %q of user %q in game %s: %w",
					other, request.RequestID, request.UserID, gameID, models.ErrDuplicateUser)
			}
			activeUsers[request.UserID] = request.RequestID
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.teams = teams
	m.requests = requests
	return nil
}

// LoadSnapshot decodes a JSON snapshot from reader and replaces the current one.
func (m *MemoryRepository) LoadSnapshot(reader io.Reader) error {
	var snapshot Snapshot
	if err := json.NewDecoder(reader).Decode(&snapshot); err != nil {
		return fmt.Errorf("unable to decode snapshot: %w", err)
	}
	if err := m.Replace(snapshot); err != nil {
		return err
	}
	logrus.
		WithField("teams", len(snapshot.Teams)).
		WithField("requests", len(snapshot.Requests)).
		Info("snapshot loaded")
	return nil
}

// LoadSnapshotFile loads the JSON snapshot stored at path.
func (m *MemoryRepository) LoadSnapshotFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open snapshot: %w", err)
	}
	defer file.Close()
	return m.LoadSnapshot(file)
}

// UpsertTeam adds team or replaces the team with the same id.
func (m *MemoryRepository) UpsertTeam(team models.Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	teams := pie.Filter(m.teams[team.GameID], func(t models.Team) bool { return t.TeamID != team.TeamID })
	m.teams[team.GameID] = append(teams, team)
	return nil
}

// UpsertMatchRequest adds request or replaces the request with the same id.
// An active request supersedes the other active requests of its user in the game, they become cancelled.
func (m *MemoryRepository) UpsertMatchRequest(request models.MatchRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := pie.Filter(m.requests[request.GameID], func(r models.MatchRequest) bool { return r.RequestID != request.RequestID })
	if request.IsActive() {
		for i := range requests {
			if requests[i].UserID == request.UserID && requests[i].IsActive() {
				requests[i].Status = models.RequestStatusCancelled
				logrus.
					WithField("requestID", requests[i].RequestID).
					WithField("supersededBy", request.RequestID).
					Debug("match request superseded")
			}
		}
	}
	m.requests[request.GameID] = append(requests, request)
	return nil
}

func (m *MemoryRepository) GetTeams(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.Team, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	teams := make([]models.Team, 0, len(m.teams[gameID]))
	for _, team := range m.teams[gameID] {
		if filter.ServerID != "" && team.ServerID != filter.ServerID {
			continue
		}
		if filter.Region != "" && !models.SameRegion(team.Region, filter.Region) {
			continue
		}
		if filter.Role != "" && !team.NeedsRole(filter.Role) {
			continue
		}
		if filter.OnlyJoinable && !team.IsJoinable() {
			continue
		}
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].TeamID < teams[j].TeamID })
	return teams, nil
}

func (m *MemoryRepository) GetMatchRequests(ctx context.Context, gameID string, filter models.CandidateFilter) ([]models.MatchRequest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	requests := make([]models.MatchRequest, 0, len(m.requests[gameID]))
	for _, request := range m.requests[gameID] {
		if filter.ServerID != "" && request.ServerID != filter.ServerID {
			continue
		}
		if filter.Region != "" && !models.SameRegion(request.Region, filter.Region) {
			continue
		}
		if filter.Role != "" && !pie.Contains(request.GetRoles(), models.NormalizeRole(filter.Role)) {
			continue
		}
		if filter.OnlyActive && !request.IsActive() {
			continue
		}
		requests = append(requests, request)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].RequestID < requests[j].RequestID })
	return requests, nil
}
