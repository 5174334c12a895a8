// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"time"

	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
)

type stubMetricsCollection struct{}

func (s stubMetricsCollection) AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration) {
}

func (s stubMetricsCollection) AddCandidatesScored(gameID, function string, count int) {
}

func (s stubMetricsCollection) AddCandidatesExcluded(gameID, function, reason string, count int) {
}

func (s stubMetricsCollection) AddAutoMatchGroupsFormed(gameID string, groups int, members int) {
}

func NewMetrics() metrics.MatchmakingMetrics {
	return stubMetricsCollection{}
}
