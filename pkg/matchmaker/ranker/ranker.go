// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package ranker turns a candidate pool into a short, ordered list of recommendations.
package ranker

import (
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"golang.org/x/sync/errgroup"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/compatibility"
	"github.com/AccelByte/extend-team-matcher/pkg/mathutil"
	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// Ranker scores candidates with a Calculator, drops the weak ones, sorts and caps the rest.
// It keeps no state between calls.
type Ranker struct {
	calculator *compatibility.Calculator
	metrics    metrics.MatchmakingMetrics

	minScore   float64
	maxResults int
	workers    int
}

type Option func(*Ranker)

// WithMinScore overrides the minimum total score a candidate needs. Zero keeps the default.
func WithMinScore(minScore float64) Option {
	return func(r *Ranker) {
		if minScore > 0 {
			r.minScore = minScore
		}
	}
}

// WithMaxResults overrides the result cap. Zero keeps the default.
func WithMaxResults(maxResults int) Option {
	return func(r *Ranker) {
		if maxResults > 0 {
			r.maxResults = maxResults
		}
	}
}

// WithWorkers bounds how many candidates are scored at once. Zero keeps the default.
func WithWorkers(workers int) Option {
	return func(r *Ranker) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

func New(calculator *compatibility.Calculator, metrics metrics.MatchmakingMetrics, opts ...Option) *Ranker {
	r := &Ranker{
		calculator: calculator,
		metrics:    metrics,
		minScore:   constants.MinCompatibilityScore,
		maxResults: constants.MaxRankedResults,
		workers:    constants.DefaultScoringWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RankTeams returns the teams that fit request best, best first.
// Teams failing the capacity guard are never scored.
func (r *Ranker) RankTeams(rootScope *envelope.Scope, request *models.MatchRequest, teams []models.Team) ([]models.CompatibilityResult, error) {
	scope := rootScope.NewChildScope("Ranker.RankTeams")
	defer scope.Finish()

	startTime := time.Now()
	defer func() {
		r.metrics.AddElapsedTimeMs(request.GameID, constants.RankTeamsFunction, time.Since(startTime))
	}()

	if err := request.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}
	for i := range teams {
		if err := teams[i].Validate(); err != nil {
			scope.RecordError(err)
			return nil, err
		}
	}

	searcher := *request
	candidates := pie.Filter(teams, func(team models.Team) bool {
		return team.IsJoinable()
	})
	r.excluded(request.GameID, constants.RankTeamsFunction, constants.ExcludedReasonCapacity, len(teams)-len(candidates))

	results, err := r.scoreAll(scope, len(candidates), func(i int) (models.CompatibilityResult, error) {
		return r.calculator.Evaluate(&searcher, &candidates[i])
	})
	if err != nil {
		scope.RecordError(err)
		scope.Log.WithError(err).Error("unable to score teams")
		return nil, err
	}
	r.metrics.AddCandidatesScored(request.GameID, constants.RankTeamsFunction, len(results))

	results = r.aboveMinimum(request.GameID, constants.RankTeamsFunction, results)
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Team.CurrentSize != b.Team.CurrentSize {
			return a.Team.CurrentSize > b.Team.CurrentSize
		}
		return a.TeamID < b.TeamID
	})
	results = r.capped(request.GameID, constants.RankTeamsFunction, results)

	scope.SetAttributes(envelope.RequestIDTag, request.RequestID)
	scope.SetAttributes(envelope.CandidateCountTag, len(teams))
	scope.SetAttributes(envelope.ResultCountTag, len(results))
	scope.Log.
		WithField("requestID", request.RequestID).
		WithField("candidates", len(teams)).
		WithField("results", len(results)).
		Debug("ranked teams")

	return results, nil
}

// RankRequests is the symmetric variant: the match requests that fit team best, best first.
// A team failing the capacity guard gets no recommendation.
func (r *Ranker) RankRequests(rootScope *envelope.Scope, team *models.Team, requests []models.MatchRequest) ([]models.CompatibilityResult, error) {
	scope := rootScope.NewChildScope("Ranker.RankRequests")
	defer scope.Finish()

	startTime := time.Now()
	defer func() {
		r.metrics.AddElapsedTimeMs(team.GameID, constants.RankRequestsFunction, time.Since(startTime))
	}()

	if err := team.Validate(); err != nil {
		scope.RecordError(err)
		return nil, err
	}
	for i := range requests {
		if err := requests[i].Validate(); err != nil {
			scope.RecordError(err)
			return nil, err
		}
	}

	if !team.IsJoinable() {
		scope.Log.WithField("teamID", team.TeamID).Debug("team is not joinable, no recommendation")
		r.excluded(team.GameID, constants.RankRequestsFunction, constants.ExcludedReasonCapacity, len(requests))
		return []models.CompatibilityResult{}, nil
	}

	recruiter := *team
	candidates := pie.Filter(requests, func(request models.MatchRequest) bool {
		return request.IsActive()
	})
	r.excluded(team.GameID, constants.RankRequestsFunction, constants.ExcludedReasonInactive, len(requests)-len(candidates))

	results, err := r.scoreAll(scope, len(candidates), func(i int) (models.CompatibilityResult, error) {
		return r.calculator.Evaluate(&candidates[i], &recruiter)
	})
	if err != nil {
		scope.RecordError(err)
		scope.Log.WithError(err).Error("unable to score match requests")
		return nil, err
	}
	r.metrics.AddCandidatesScored(team.GameID, constants.RankRequestsFunction, len(results))

	results = r.aboveMinimum(team.GameID, constants.RankRequestsFunction, results)
	sort.SliceStable(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		if a.Request.CreatedAt != b.Request.CreatedAt {
			return a.Request.CreatedAt < b.Request.CreatedAt
		}
		return a.RequestID < b.RequestID
	})
	results = r.capped(team.GameID, constants.RankRequestsFunction, results)

	scope.SetAttributes(envelope.TeamIDTag, team.TeamID)
	scope.SetAttributes(envelope.CandidateCountTag, len(requests))
	scope.SetAttributes(envelope.ResultCountTag, len(results))
	scope.Log.
		WithField("teamID", team.TeamID).
		WithField("candidates", len(requests)).
		WithField("results", len(results)).
		Debug("ranked match requests")

	return results, nil
}

// scoreAll runs score for every index on a bounded fan-out. Results keep the index order.
func (r *Ranker) scoreAll(scope *envelope.Scope, count int, score func(i int) (models.CompatibilityResult, error)) ([]models.CompatibilityResult, error) {
	results := make([]models.CompatibilityResult, count)
	g, ctx := errgroup.WithContext(scope.Ctx)
	g.SetLimit(r.workers)
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := score(i)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *Ranker) aboveMinimum(gameID, function string, results []models.CompatibilityResult) []models.CompatibilityResult {
	kept := pie.Filter(results, func(result models.CompatibilityResult) bool {
		return result.TotalScore >= r.minScore
	})
	r.excluded(gameID, function, constants.ExcludedReasonBelowMinimum, len(results)-len(kept))
	return kept
}

func (r *Ranker) capped(gameID, function string, results []models.CompatibilityResult) []models.CompatibilityResult {
	if results == nil {
		return []models.CompatibilityResult{}
	}
	kept := mathutil.Min(len(results), r.maxResults)
	r.excluded(gameID, function, constants.ExcludedReasonOverCap, len(results)-kept)
	return results[:kept]
}

func (r *Ranker) excluded(gameID, function, reason string, count int) {
	if count > 0 {
		r.metrics.AddCandidatesExcluded(gameID, function, reason, count)
	}
}
