// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package compatibility

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

func TestSkillDistanceScore_FullGrid(t *testing.T) {
	want := [4][4]float64{
		{100, 66.7, 16.7, 0},
		{66.7, 100, 66.7, 16.7},
		{16.7, 66.7, 100, 66.7},
		{0, 16.7, 66.7, 100},
	}
	for i, a := range models.SkillTiers {
		for j, b := range models.SkillTiers {
			t.Run(fmt.Sprintf("%s-%s", a, b), func(t *testing.T) {
				got, err := SkillDistanceScore(a, b)
				require.NoError(t, err)
				assert.Equal(t, want[i][j], got)
			})
		}
	}
}

func TestSkillDistanceScore_Examples(t *testing.T) {
	tests := []struct {
		a, b models.SkillTier
		want float64
	}{
		{models.SkillTierBeginner, models.SkillTierAdvanced, 16.7},
		{models.SkillTierIntermediate, models.SkillTierExpert, 16.7},
		{models.SkillTierExpert, models.SkillTierExpert, 100},
		{models.SkillTierBeginner, models.SkillTierExpert, 0},
	}
	for _, tt := range tests {
		got, err := SkillDistanceScore(tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s vs %s", tt.a, tt.b)
	}
}

func TestSkillDistanceScore_UnknownTier(t *testing.T) {
	_, err := SkillDistanceScore("grandmaster", models.SkillTierExpert)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
