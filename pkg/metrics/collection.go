// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type MatchmakingMetrics interface {
	AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration)
	AddCandidatesScored(gameID, function string, count int)
	AddCandidatesExcluded(gameID, function, reason string, count int)
	AddAutoMatchGroupsFormed(gameID string, groups int, members int)
}

func NewMetrics(registry *prometheus.Registry) MatchmakingMetrics {
	return setupPrometheusMetrics(registry)
}
