// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

// Package compatibility scores how well a match request fits a team.
// The calculator is stateless and safe for concurrent use.
package compatibility

import (
	"fmt"
	"math"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
	"github.com/AccelByte/extend-team-matcher/pkg/mathutil"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

const totalWeight = 100.0

// Calculator combines factor sub-scores into a weighted total.
type Calculator struct {
	factors []Factor
}

// NewCalculator returns a calculator over factors, or over DefaultFactors when none is given.
// The factor weights must sum to 100.
func NewCalculator(factors ...Factor) (*Calculator, error) {
	if len(factors) == 0 {
		factors = DefaultFactors()
	}

	var sum float64
	names := make(map[string]struct{}, len(factors))
	for _, factor := range factors {
		if factor.Weight() < 0 {
			return nil, fmt.Errorf("%w: factor %s has negative weight %v", models.ErrComputationInvariantViolation, factor.Name(), factor.Weight())
		}
		if _, ok := names[factor.Name()]; ok {
			return nil, fmt.Errorf("%w: factor %s declared twice", models.ErrComputationInvariantViolation, factor.Name())
		}
		names[factor.Name()] = struct{}{}
		sum += factor.Weight()
	}
	if math.Abs(sum-totalWeight) > 1e-9 {
		return nil, fmt.Errorf("%w: factor weights sum to %v, expected %v", models.ErrComputationInvariantViolation, sum, totalWeight)
	}

	return &Calculator{factors: factors}, nil
}

// NewDefaultCalculator returns the calculator with the fixed weight table.
func NewDefaultCalculator() *Calculator {
	calculator, err := NewCalculator()
	if err != nil {
		panic(err)
	}
	return calculator
}

// Factors returns the factors in declaration order.
func (c *Calculator) Factors() []Factor {
	return append([]Factor(nil), c.factors...)
}

// Calculate validates both sides and scores request against team.
func (c *Calculator) Calculate(request *models.MatchRequest, team *models.Team) (models.CompatibilityResult, error) {
	if err := request.Validate(); err != nil {
		return models.CompatibilityResult{}, err
	}
	if err := team.Validate(); err != nil {
		return models.CompatibilityResult{}, err
	}
	return c.Evaluate(request, team)
}

// Evaluate scores request against team without validating them.
// Callers scoring a whole pool validate it once beforehand.
func (c *Calculator) Evaluate(request *models.MatchRequest, team *models.Team) (models.CompatibilityResult, error) {
	result := models.CompatibilityResult{
		Breakdown: make(map[string]float64, len(c.factors)),
		Reasons:   make([]string, 0, len(c.factors)),
		RequestID: request.RequestID,
		TeamID:    team.TeamID,
		Request:   request,
		Team:      team,
	}

	var total float64
	for _, factor := range c.factors {
		factorScore, err := factor.Score(request, team)
		if err != nil {
			return models.CompatibilityResult{}, err
		}
		if factorScore.Score < 0 || factorScore.Score > 100 || math.IsNaN(factorScore.Score) {
			return models.CompatibilityResult{}, fmt.Errorf("%w: factor %s scored %v", models.ErrComputationInvariantViolation, factor.Name(), factorScore.Score)
		}

		result.Breakdown[factor.Name()] = factorScore.Score
		total += factor.Weight() * factorScore.Score / totalWeight

		if factorScore.Reason != "" && !factorScore.Neutral && factorScore.Score > constants.ReasonThreshold {
			result.Reasons = append(result.Reasons, factorScore.Reason)
		}
	}

	result.TotalScore = mathutil.Round1(total)
	if result.TotalScore < 0 || result.TotalScore > 100 {
		return models.CompatibilityResult{}, fmt.Errorf("%w: total score %v out of range", models.ErrComputationInvariantViolation, result.TotalScore)
	}

	return result, nil
}
