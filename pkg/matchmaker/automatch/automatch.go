// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package automatch forms new teams out of a pool of unmatched match requests.
//
// Assembly is greedy. The oldest request seeds a group, then the request with the best average
// compatibility against every current member joins, until the group is complete or nobody left
// reaches the minimum score. Groups are built one after the other; only the scoring of the
// remaining pool against the current group runs in parallel.
package automatch

import (
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/compatibility"
	"github.com/AccelByte/extend-team-matcher/pkg/mathutil"
	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
	"github.com/AccelByte/extend-team-matcher/pkg/utils"
)

type Assembler struct {
	calculator *compatibility.Calculator
	metrics    metrics.MatchmakingMetrics
	pool       *models.Pool

	minScore   float64
	workers    int
	requestTTL time.Duration

	// roleLimits caps how many members of a group may play a role
	roleLimits map[string]int

	// Now is the clock used by AssembleGame to expire old match requests
	Now func() time.Time
}

type Option func(*Assembler)

// WithMinScore overrides the average score a request needs to join a group. Zero keeps the default.
func WithMinScore(minScore float64) Option {
	return func(a *Assembler) {
		if minScore > 0 {
			a.minScore = minScore
		}
	}
}

// WithWorkers bounds how many candidates are scored at once. Zero keeps the default.
func WithWorkers(workers int) Option {
	return func(a *Assembler) {
		if workers > 0 {
			a.workers = workers
		}
	}
}

// WithRequestTTL sets how long a match request stays in the pool of AssembleGame.
func WithRequestTTL(ttl time.Duration) Option {
	return func(a *Assembler) {
		a.requestTTL = ttl
	}
}

// WithRoleLimits caps the members of a group per role, e.g. {"awper": 1}.
func WithRoleLimits(limits map[string]int) Option {
	return func(a *Assembler) {
		a.roleLimits = make(map[string]int, len(limits))
		for role, limit := range limits {
			a.roleLimits[models.NormalizeRole(role)] = limit
		}
	}
}

func New(calculator *compatibility.Calculator, metrics metrics.MatchmakingMetrics, opts ...Option) *Assembler {
	a := &Assembler{
		calculator: calculator,
		metrics:    metrics,
		pool:       models.NewPool(),
		minScore:   constants.MinCompatibilityScore,
		workers:    constants.DefaultScoringWorkers,
		requestTTL: constants.DefaultRequestTTL,
		roleLimits: map[string]int{},
		Now:        time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AssembleGame reads the active match requests of a game, drops the expired ones and assembles them.
func (a *Assembler) AssembleGame(rootScope *envelope.Scope, repository matchmaker.CandidateRepository, gameID string, maxGroups, groupSize int) ([]models.AutoMatchGroup, error) {
	scope := rootScope.NewChildScope("Assembler.AssembleGame")
	defer scope.Finish()

	if gameID == "" {
		return nil, models.ErrMissingGameID
	}

	requests, err := repository.GetMatchRequests(scope.Ctx, gameID, models.CandidateFilter{OnlyActive: true})
	if err != nil {
		scope.RecordError(err)
		return nil, err
	}

	now := a.Now()
	fresh := pie.Filter(requests, func(request models.MatchRequest) bool {
		return !request.IsExpired(now, a.requestTTL)
	})
	if expired := len(requests) - len(fresh); expired > 0 {
		a.metrics.AddCandidatesExcluded(gameID, constants.AutoMatchFunction, constants.ExcludedReasonExpired, expired)
	}

	latest := latestPerUser(fresh)
	if superseded := len(fresh) - len(latest); superseded > 0 {
		a.metrics.AddCandidatesExcluded(gameID, constants.AutoMatchFunction, constants.ExcludedReasonSuperseded, superseded)
		scope.Log.WithField("superseded", superseded).Warn("pool holds several active requests of the same user")
	}

	return a.Assemble(scope, latest, maxGroups, groupSize)
}

// latestPerUser keeps the newest active request of every user, in input order.
func latestPerUser(requests []models.MatchRequest) []models.MatchRequest {
	newest := make(map[string]int, len(requests))
	for i := range requests {
		if !requests[i].IsActive() {
			continue
		}
		j, ok := newest[requests[i].UserID]
		if !ok || isNewer(&requests[i], &requests[j]) {
			newest[requests[i].UserID] = i
		}
	}

	latest := make([]models.MatchRequest, 0, len(requests))
	for i := range requests {
		if requests[i].IsActive() && newest[requests[i].UserID] != i {
			continue
		}
		latest = append(latest, requests[i])
	}
	return latest
}

func isNewer(a, b *models.MatchRequest) bool {
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt > b.CreatedAt
	}
	return a.RequestID > b.RequestID
}

// Assemble forms at most maxGroups groups of 2 to groupSize members out of requests.
// Requests that are not active are ignored. The result never holds a group of one.
func (a *Assembler) Assemble(rootScope *envelope.Scope, requests []models.MatchRequest, maxGroups, groupSize int) ([]models.AutoMatchGroup, error) {
	scope := rootScope.NewChildScope("Assembler.Assemble")
	defer scope.Finish()

	startTime := time.Now()

	pool, err := a.validate(requests, maxGroups, groupSize)
	if err != nil {
		scope.RecordError(err)
		return nil, err
	}
	groups := make([]models.AutoMatchGroup, 0)
	if len(pool) == 0 {
		return groups, nil
	}

	gameID := pool[0].GameID
	scope = scope.WithField("gameID", gameID)
	scope.SetAttributes(envelope.GameIDTag, gameID)
	defer func() {
		a.metrics.AddElapsedTimeMs(gameID, constants.AutoMatchFunction, time.Since(startTime))
	}()

	// oldest first
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].CreatedAt != pool[j].CreatedAt {
			return pool[i].CreatedAt < pool[j].CreatedAt
		}
		return pool[i].RequestID < pool[j].RequestID
	})

	consumed := make([]bool, len(pool))
	failedSeed := make([]bool, len(pool))
	members := 0

	for len(groups) < maxGroups {
		seed := -1
		for i := range pool {
			if !consumed[i] && !failedSeed[i] {
				seed = i
				break
			}
		}
		if seed < 0 {
			break
		}

		group, err := a.grow(scope, pool, consumed, seed, groupSize)
		if err != nil {
			scope.RecordError(err)
			scope.Log.WithError(err).Error("unable to assemble group")
			return nil, err
		}
		if group == nil {
			// a group of one is not a match, the seed stays available to other groups
			failedSeed[seed] = true
			continue
		}

		for _, index := range group.indexes {
			consumed[index] = true
		}
		members += len(group.indexes)
		groups = append(groups, group.toAutoMatchGroup(pool, gameID))
	}

	a.metrics.AddAutoMatchGroupsFormed(gameID, len(groups), members)
	scope.SetAttributes(envelope.CandidateCountTag, len(pool))
	scope.SetAttributes(envelope.ResultCountTag, len(groups))
	scope.Log.
		WithField("pool", len(pool)).
		WithField("groups", len(groups)).
		WithField("members", members).
		Info("auto-match assembled")

	return groups, nil
}

func (a *Assembler) validate(requests []models.MatchRequest, maxGroups, groupSize int) ([]models.MatchRequest, error) {
	if groupSize < 2 {
		return nil, models.ErrInvalidGroupSize
	}
	if maxGroups < 1 {
		return nil, models.ErrInvalidMaxGroups
	}

	gameID := ""
	users := make(map[string]struct{}, len(requests))
	pool := make([]models.MatchRequest, 0, len(requests))
	for i := range requests {
		request := requests[i]
		if err := request.Validate(); err != nil {
			return nil, err
		}
		if gameID == "" {
			gameID = request.GameID
		} else if request.GameID != gameID {
			return nil, models.ErrMixedGames
		}
		if !request.IsActive() {
			continue
		}
		if _, ok := users[request.UserID]; ok {
			return nil, models.ErrDuplicateUser
		}
		users[request.UserID] = struct{}{}
		pool = append(pool, request)
	}
	return pool, nil
}

// grow builds a group around seed. It returns nil when nobody could join the seed.
func (a *Assembler) grow(scope *envelope.Scope, pool []models.MatchRequest, consumed []bool, seed, groupSize int) (*group, error) {
	g := newGroup(a.roleLimits)
	g.add(seed, &pool[seed], nil)

	for len(g.indexes) < groupSize {
		candidates := make([]int, 0, len(pool))
		for i := range pool {
			if consumed[i] || g.has(i) {
				continue
			}
			if !g.roleEligible(&pool[i]) {
				continue
			}
			candidates = append(candidates, i)
		}
		if len(candidates) == 0 {
			break
		}

		scores, err := a.scoreCandidates(scope, pool, g, candidates)
		if err != nil {
			return nil, err
		}

		best := -1
		bestAverage := 0.0
		for i, pairScores := range scores {
			average := stat.Mean(pairScores, nil)
			if average < a.minScore {
				continue
			}
			// candidates are in pool order, so the older request wins a tie
			if best < 0 || average > bestAverage {
				best = i
				bestAverage = average
			}
		}
		if best < 0 {
			for _, pairScores := range scores {
				a.pool.Scores.Put(pairScores[:0])
			}
			break
		}

		g.add(candidates[best], &pool[candidates[best]], scores[best])
		for _, pairScores := range scores {
			a.pool.Scores.Put(pairScores[:0])
		}
	}

	if len(g.indexes) < 2 {
		return nil, nil
	}
	return g, nil
}

// scoreCandidates scores each candidate against every current member, in parallel per candidate.
func (a *Assembler) scoreCandidates(scope *envelope.Scope, pool []models.MatchRequest, g *group, candidates []int) ([][]float64, error) {
	scores := make([][]float64, len(candidates))
	eg, ctx := errgroup.WithContext(scope.Ctx)
	eg.SetLimit(a.workers)
	for i, candidateIndex := range candidates {
		i, candidate := i, &pool[candidateIndex]
		neededRoles := g.neededRolesFor(candidate)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pairScores := a.pool.Scores.Get()[:0]
			for _, memberIndex := range g.indexes {
				member := asTeam(&pool[memberIndex], neededRoles)
				result, err := a.calculator.Evaluate(candidate, &member)
				if err != nil {
					return err
				}
				pairScores = append(pairScores, result.TotalScore)
			}
			scores[i] = pairScores
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// asTeam projects a group member into a one-person team carrying its own declared attributes.
func asTeam(member *models.MatchRequest, neededRoles map[string]int) models.Team {
	return models.Team{
		TeamID:          member.RequestID,
		GameID:          member.GameID,
		ServerID:        member.ServerID,
		SkillTier:       member.SkillTier,
		CurrentSize:     1,
		MaxSize:         2,
		NeededRoles:     neededRoles,
		Region:          member.Region,
		ActivityWindows: member.Availability,
		Languages:       member.Languages,
		Recruitment:     models.RecruitmentOpen,
		Status:          models.TeamStatusRecruiting,
	}
}

type group struct {
	indexes    []int
	pairScores []float64
	claimed    map[string]int
	roleLimits map[string]int
}

func newGroup(roleLimits map[string]int) *group {
	return &group{
		claimed:    map[string]int{},
		roleLimits: roleLimits,
	}
}

func (g *group) has(index int) bool {
	return pie.Contains(g.indexes, index)
}

func (g *group) add(index int, request *models.MatchRequest, pairScores []float64) {
	g.indexes = append(g.indexes, index)
	g.pairScores = append(g.pairScores, pairScores...)
	if role := g.claimableRole(request); role != "" {
		g.claimed[role]++
	}
}

func (g *group) underLimit(role string) bool {
	limit, ok := g.roleLimits[role]
	return !ok || g.claimed[role] < limit
}

// claimableRole is the role a request would play in the group: its first role nobody plays yet,
// else its first role still under its limit.
func (g *group) claimableRole(request *models.MatchRequest) string {
	roles := request.GetRoles()
	for _, role := range roles {
		if g.claimed[role] == 0 && g.underLimit(role) {
			return role
		}
	}
	for _, role := range roles {
		if g.underLimit(role) {
			return role
		}
	}
	return ""
}

// roleEligible tells whether a request can still play some role in the group.
func (g *group) roleEligible(request *models.MatchRequest) bool {
	return len(request.GetRoles()) == 0 || g.claimableRole(request) != ""
}

// neededRolesFor lists the roles of request that the group does not play yet.
func (g *group) neededRolesFor(request *models.MatchRequest) map[string]int {
	needed := make(map[string]int)
	for _, role := range request.GetRoles() {
		if g.claimed[role] == 0 && g.underLimit(role) {
			needed[role] = 1
		}
	}
	return needed
}

func (g *group) toAutoMatchGroup(pool []models.MatchRequest, gameID string) models.AutoMatchGroup {
	members := make([]models.MatchRequest, 0, len(g.indexes))
	for _, index := range g.indexes {
		members = append(members, pool[index])
	}
	result := models.AutoMatchGroup{
		GameID:       gameID,
		Members:      members,
		AverageScore: mathutil.Round1(stat.Mean(g.pairScores, nil)),
	}
	result.GroupID = utils.GenerateGroupID(result.GetMemberRequestIDs())
	return result
}
