// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package finder is the entry point of the team matcher: it reads a candidate pool from the
// repository, drops candidates failing the caller's hard filters and hands the rest to the ranker.
package finder

import (
	"fmt"
	"time"

	"gopkg.in/typ.v4/slices"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/ranker"
	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

type Finder struct {
	repository matchmaker.CandidateRepository
	ranker     *ranker.Ranker
	metrics    metrics.MatchmakingMetrics

	cache      matchmaker.ResultCache
	requestTTL time.Duration

	// Now is the clock used to expire old match requests
	Now func() time.Time
}

type Option func(*Finder)

// WithResultCache keeps FindTeams results in cache.
func WithResultCache(cache matchmaker.ResultCache) Option {
	return func(f *Finder) {
		f.cache = cache
	}
}

// WithRequestTTL sets how long a match request stays a candidate. Zero keeps requests forever.
func WithRequestTTL(ttl time.Duration) Option {
	return func(f *Finder) {
		f.requestTTL = ttl
	}
}

func New(repository matchmaker.CandidateRepository, ranker *ranker.Ranker, metrics metrics.MatchmakingMetrics, opts ...Option) *Finder {
	f := &Finder{
		repository: repository,
		ranker:     ranker,
		metrics:    metrics,
		requestTTL: constants.DefaultRequestTTL,
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FindTeams recommends open teams to the player behind request.
func (f *Finder) FindTeams(rootScope *envelope.Scope, request *models.MatchRequest, criteria models.SearchCriteria) ([]models.CompatibilityResult, error) {
	scope := rootScope.NewChildScope("Finder.FindTeams")
	defer scope.Finish()

	if err := request.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}
	if err := criteria.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}

	if criteria.GameID == "" {
		criteria.GameID = request.GameID
	}
	scope = scope.WithField("gameID", criteria.GameID).WithField("requestID", request.RequestID)
	scope.SetAttributes(envelope.GameIDTag, criteria.GameID)
	scope.SetAttributes(envelope.RequestIDTag, request.RequestID)

	startTime := time.Now()
	defer func() {
		f.metrics.AddElapsedTimeMs(criteria.GameID, constants.FindTeamsFunction, time.Since(startTime))
	}()

	// a resubmitted request id with new attributes must not hit the old rankings
	cacheKey := "teams:" + request.RequestID + "|" + request.Key() + "|" + criteria.Key()
	if f.cache != nil {
		if results, ok := f.cache.Get(cacheKey); ok {
			scope.Log.WithField("results", len(results)).Debug("serving teams from cache")
			return results, nil
		}
	}

	filter := criteria.CandidateFilter()
	filter.OnlyJoinable = true
	teams, err := f.repository.GetTeams(scope.Ctx, criteria.GameID, filter)
	if err != nil {
		scope.RecordError(err)
		return nil, fmt.Errorf("unable to get teams of game %s: %w", criteria.GameID, err)
	}

	candidates := slices.Filter(teams, func(team models.Team) bool {
		return matchTeam(&criteria, request, &team)
	})
	if excluded := len(teams) - len(candidates); excluded > 0 {
		f.metrics.AddCandidatesExcluded(criteria.GameID, constants.FindTeamsFunction, constants.ExcludedReasonPreFilter, excluded)
	}
	scope.Log.
		WithField("pool", len(teams)).
		WithField("candidates", len(candidates)).
		Debug("teams pre-filtered")

	results, err := f.ranker.RankTeams(scope, request, candidates)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		f.cache.Set(cacheKey, results)
	}
	return results, nil
}

// FindTeammates recommends active match requests to a recruiting team.
func (f *Finder) FindTeammates(rootScope *envelope.Scope, team *models.Team, criteria models.SearchCriteria) ([]models.CompatibilityResult, error) {
	scope := rootScope.NewChildScope("Finder.FindTeammates")
	defer scope.Finish()

	if err := team.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}
	if err := criteria.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}

	if criteria.GameID == "" {
		criteria.GameID = team.GameID
	}
	scope = scope.WithField("gameID", criteria.GameID).WithField("teamID", team.TeamID)
	scope.SetAttributes(envelope.GameIDTag, criteria.GameID)
	scope.SetAttributes(envelope.TeamIDTag, team.TeamID)

	startTime := time.Now()
	defer func() {
		f.metrics.AddElapsedTimeMs(criteria.GameID, constants.FindTeammatesFunction, time.Since(startTime))
	}()

	filter := criteria.CandidateFilter()
	filter.OnlyActive = true
	requests, err := f.repository.GetMatchRequests(scope.Ctx, criteria.GameID, filter)
	if err != nil {
		scope.RecordError(err)
		return nil, fmt.Errorf("unable to get match requests of game %s: %w", criteria.GameID, err)
	}

	now := f.Now()
	fresh := slices.Filter(requests, func(request models.MatchRequest) bool {
		return !request.IsExpired(now, f.requestTTL)
	})
	if expired := len(requests) - len(fresh); expired > 0 {
		f.metrics.AddCandidatesExcluded(criteria.GameID, constants.FindTeammatesFunction, constants.ExcludedReasonExpired, expired)
	}

	candidates := slices.Filter(fresh, func(request models.MatchRequest) bool {
		return matchRequest(&criteria, team, &request)
	})
	if excluded := len(fresh) - len(candidates); excluded > 0 {
		f.metrics.AddCandidatesExcluded(criteria.GameID, constants.FindTeammatesFunction, constants.ExcludedReasonPreFilter, excluded)
	}
	scope.Log.
		WithField("pool", len(requests)).
		WithField("candidates", len(candidates)).
		Debug("match requests pre-filtered")

	return f.ranker.RankRequests(scope, team, candidates)
}
