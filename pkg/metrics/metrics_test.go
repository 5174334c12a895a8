// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Collects(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	m.AddElapsedTimeMs("cs2", "rankTeams", 12*time.Millisecond)
	m.AddCandidatesScored("cs2", "rankTeams", 4)
	m.AddCandidatesExcluded("cs2", "rankTeams", "excluded_capacity_guard", 2)
	m.AddCandidatesExcluded("cs2", "rankTeams", "excluded_pre_filter", 0)
	m.AddAutoMatchGroupsFormed("cs2", 2, 7)

	pm := m.(prometheusMetrics)
	assert.Equal(t, 4.0, testutil.ToFloat64(pm.candidatesScored.WithLabelValues("cs2", "rankTeams")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.candidatesExcluded.WithLabelValues("cs2", "rankTeams", "excluded_capacity_guard")))
	assert.Equal(t, 2.0, testutil.ToFloat64(pm.groupsFormed.WithLabelValues("cs2")))
	assert.Equal(t, 7.0, testutil.ToFloat64(pm.groupMembers.WithLabelValues("cs2")))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "ab_teammatcher_elapsed_time_ms")
}
