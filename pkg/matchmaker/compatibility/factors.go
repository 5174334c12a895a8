// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package compatibility

import (
	"fmt"
	"strings"

	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
	"github.com/AccelByte/extend-team-matcher/pkg/mathutil"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
	"github.com/AccelByte/extend-team-matcher/pkg/utils"
)

const (
	neutralRoleScore     = 100.0
	neutralRegionScore   = 75.0
	mismatchRegionScore  = 25.0
	neutralLanguageScore = 100.0
)

// FactorScore is the 0-100 sub-score of one compatibility dimension.
type FactorScore struct {
	Score  float64
	Reason string

	// Neutral is set when the factor had no information and returned its default.
	Neutral bool
}

// Factor scores one compatibility dimension of a request against a team.
type Factor interface {
	Name() string
	Weight() float64
	Score(request *models.MatchRequest, team *models.Team) (FactorScore, error)
}

// DefaultFactors returns the factors in declaration order with their fixed weights.
func DefaultFactors() []Factor {
	return []Factor{
		SkillFactor{weight: constants.WeightSkill},
		RoleFactor{weight: constants.WeightRole},
		RegionFactor{weight: constants.WeightRegion},
		AvailabilityFactor{weight: constants.WeightAvailability},
		LanguageFactor{weight: constants.WeightLanguage},
	}
}

// SkillFactor scores the skill tier distance.
type SkillFactor struct {
	weight float64
}

func (f SkillFactor) Name() string    { return constants.FactorSkill }
func (f SkillFactor) Weight() float64 { return f.weight }

func (f SkillFactor) Score(request *models.MatchRequest, team *models.Team) (FactorScore, error) {
	score, err := SkillDistanceScore(request.SkillTier, team.SkillTier)
	if err != nil {
		return FactorScore{}, err
	}
	reason := ""
	if request.SkillTier == team.SkillTier {
		reason = fmt.Sprintf("Same skill level (%s)", request.SkillTier)
	} else {
		reason = fmt.Sprintf("Close skill level (%s vs %s)", request.SkillTier, team.SkillTier)
	}
	return FactorScore{Score: score, Reason: reason}, nil
}

// RoleFactor scores the share of requested roles the team still needs.
type RoleFactor struct {
	weight float64
}

func (f RoleFactor) Name() string    { return constants.FactorRole }
func (f RoleFactor) Weight() float64 { return f.weight }

func (f RoleFactor) Score(request *models.MatchRequest, team *models.Team) (FactorScore, error) {
	roles := request.GetRoles()
	if len(roles) == 0 {
		return FactorScore{Score: neutralRoleScore, Neutral: true}, nil
	}

	needed := team.GetNeededRoles()
	matched := pie.Filter(roles, func(role string) bool {
		return needed[role] > 0
	})
	score := 100 * float64(len(matched)) / float64(len(roles))

	reason := ""
	switch {
	case len(matched) == len(roles):
		reason = fmt.Sprintf("Team needs your roles: %s", strings.Join(matched, ", "))
	case len(matched) > 0:
		reason = fmt.Sprintf("Team needs %d of your %d roles: %s", len(matched), len(roles), strings.Join(matched, ", "))
	}
	return FactorScore{Score: score, Reason: reason}, nil
}

// RegionFactor scores the preferred regions. Cross-region play is possible, so a mismatch is not zero.
type RegionFactor struct {
	weight float64
}

func (f RegionFactor) Name() string    { return constants.FactorRegion }
func (f RegionFactor) Weight() float64 { return f.weight }

func (f RegionFactor) Score(request *models.MatchRequest, team *models.Team) (FactorScore, error) {
	requestRegion := strings.TrimSpace(request.Region)
	teamRegion := strings.TrimSpace(team.Region)
	switch {
	case requestRegion == "" || teamRegion == "":
		return FactorScore{Score: neutralRegionScore, Neutral: true}, nil
	case models.SameRegion(requestRegion, teamRegion):
		return FactorScore{Score: 100, Reason: fmt.Sprintf("Same region (%s)", requestRegion)}, nil
	default:
		return FactorScore{Score: mismatchRegionScore}, nil
	}
}

// AvailabilityFactor scores the overlap of time slots. A flexible side matches every slot of the other side.
type AvailabilityFactor struct {
	weight float64
}

func (f AvailabilityFactor) Name() string    { return constants.FactorAvailability }
func (f AvailabilityFactor) Weight() float64 { return f.weight }

func (f AvailabilityFactor) Score(request *models.MatchRequest, team *models.Team) (FactorScore, error) {
	requestSlots := expandFlexible(request.Availability, team.ActivityWindows)
	teamSlots := expandFlexible(team.ActivityWindows, request.Availability)

	shared, score := overlap(requestSlots, teamSlots)
	reason := ""
	if len(shared) > 0 {
		reason = fmt.Sprintf("Shared availability: %s", strings.Join(shared, ", "))
	}
	return FactorScore{Score: score, Reason: reason}, nil
}

// LanguageFactor scores the overlap of spoken languages. A request without languages accepts any.
type LanguageFactor struct {
	weight float64
}

func (f LanguageFactor) Name() string    { return constants.FactorLanguage }
func (f LanguageFactor) Weight() float64 { return f.weight }

func (f LanguageFactor) Score(request *models.MatchRequest, team *models.Team) (FactorScore, error) {
	requestLanguages := request.GetLanguages()
	if len(requestLanguages) == 0 {
		return FactorScore{Score: neutralLanguageScore, Neutral: true}, nil
	}

	shared, score := overlap(requestLanguages, team.GetLanguages())
	reason := ""
	if len(shared) > 0 {
		reason = fmt.Sprintf("Shared languages: %s", strings.Join(shared, ", "))
	}
	return FactorScore{Score: score, Reason: reason}, nil
}

// expandFlexible returns the concrete slots of own. A flexible side takes the concrete slots of other,
// or every concrete slot when other has none.
func expandFlexible(own, other []models.TimeSlot) []string {
	if !pie.Contains(own, models.TimeSlotFlexible) {
		return timeSlotsToStrings(own)
	}
	concreteOther := pie.Filter(other, func(slot models.TimeSlot) bool {
		return slot != models.TimeSlotFlexible
	})
	if len(concreteOther) == 0 {
		return timeSlotsToStrings(models.ConcreteTimeSlots)
	}
	return timeSlotsToStrings(concreteOther)
}

func timeSlotsToStrings(slots []models.TimeSlot) []string {
	return utils.UniqueOrdered(pie.Map(slots, func(slot models.TimeSlot) string {
		return string(slot)
	}))
}

// overlap is |a ∩ b| / max(1, |a ∪ b|) scaled to 100. The intersection keeps the order of a.
func overlap(a, b []string) ([]string, float64) {
	intersection := pie.Filter(utils.UniqueOrdered(a), func(value string) bool {
		return pie.Contains(b, value)
	})
	union := utils.UniqueOrdered(append(append([]string(nil), a...), b...))
	return intersection, 100 * float64(len(intersection)) / float64(mathutil.Max(1, len(union)))
}
