// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package compatibility

import (
	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// skillDistanceScores is indexed by the ordinal distance of two tiers.
// Adjacent tiers keep most of the score, a two-tier gap keeps a small positive signal.
var skillDistanceScores = [...]float64{
	0: 100,
	1: 66.7,
	2: 16.7,
	3: 0,
}

// SkillDistanceScore maps a pair of tiers to a 0-100 compatibility score.
func SkillDistanceScore(a, b models.SkillTier) (float64, error) {
	distance, err := SkillDistance(a, b)
	if err != nil {
		return 0, err
	}
	return skillDistanceScores[distance], nil
}

// SkillDistance returns the absolute ordinal distance (0-3) of two tiers.
func SkillDistance(a, b models.SkillTier) (int, error) {
	ordinalA, ordinalB := a.Ordinal(), b.Ordinal()
	if ordinalA < 0 || ordinalB < 0 {
		return 0, models.ErrUnknownSkillTier
	}
	distance := ordinalA - ordinalB
	if distance < 0 {
		distance = -distance
	}
	return distance, nil
}
