// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-team-matcher/pkg/constants"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.MinCompatibilityScore, cfg.GetMinCompatibilityScore())
	assert.Equal(t, constants.MaxRankedResults, cfg.GetMaxRankedResults())
	assert.Equal(t, constants.DefaultScoringWorkers, cfg.GetScoringWorkers())
	assert.Equal(t, constants.DefaultRequestTTL, cfg.GetRequestTTL())
	assert.Equal(t, constants.DefaultResultCacheTTL, cfg.GetResultCacheTTL())
	assert.Equal(t, constants.DefaultAutoMatchMaxGroups, cfg.GetAutoMatchMaxGroups())
	assert.Equal(t, constants.DefaultAutoMatchGroupSize, cfg.GetAutoMatchGroupSize())
	assert.Equal(t, ":8080", cfg.HTTPAddress)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("MIN_COMPATIBILITY_SCORE", "60")
	t.Setenv("MAX_RANKED_RESULTS", "3")
	t.Setenv("REQUEST_TTL_SECOND", "120")
	t.Setenv("RESULT_CACHE_TTL_SECOND", "-1")
	t.Setenv("HTTP_ADDRESS", ":9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60.0, cfg.GetMinCompatibilityScore())
	assert.Equal(t, 3, cfg.GetMaxRankedResults())
	assert.Equal(t, 2*time.Minute, cfg.GetRequestTTL())
	assert.Equal(t, time.Duration(0), cfg.GetResultCacheTTL())
	assert.Equal(t, ":9090", cfg.HTTPAddress)
}

func TestLoad_InvalidNumber(t *testing.T) {
	t.Setenv("SCORING_WORKERS", "many")

	_, err := Load()
	assert.Error(t, err)
}
