// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusMetrics struct {
	elapsedTime        prometheus.HistogramVec
	candidatesScored   prometheus.CounterVec
	candidatesExcluded prometheus.CounterVec
	groupsFormed       prometheus.CounterVec
	groupMembers       prometheus.CounterVec
}

func setupPrometheusMetrics(registry *prometheus.Registry) prometheusMetrics {
	factory := promauto.With(registry)

	//nolint:promlinter
	elapsedTime := factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ab_teammatcher_elapsed_time_ms",
			Help:    "A histogram of team matcher functions elapsed time in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"game_id", "function"})

	candidatesScored := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_teammatcher_candidates_scored_total",
			Help: "Number of candidates scored by the compatibility calculator",
		}, []string{"game_id", "function"})

	candidatesExcluded := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_teammatcher_candidates_excluded_total",
			Help: "Number of candidates dropped before or after scoring, by reason",
		}, []string{"game_id", "function", "reason"})

	groupsFormed := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_teammatcher_automatch_groups_total",
			Help: "Number of groups formed by auto-match",
		}, []string{"game_id"})

	groupMembers := factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ab_teammatcher_automatch_members_total",
			Help: "Number of requests consumed by auto-match groups",
		}, []string{"game_id"})

	return prometheusMetrics{
		elapsedTime:        *elapsedTime,
		candidatesScored:   *candidatesScored,
		candidatesExcluded: *candidatesExcluded,
		groupsFormed:       *groupsFormed,
		groupMembers:       *groupMembers,
	}
}

func (metrics prometheusMetrics) AddElapsedTimeMs(gameID, function string, elapsedTime time.Duration) {
	metrics.elapsedTime.With(prometheus.Labels{"game_id": gameID, "function": function}).Observe(float64(elapsedTime.Milliseconds()))
}

func (metrics prometheusMetrics) AddCandidatesScored(gameID, function string, count int) {
	metrics.candidatesScored.With(prometheus.Labels{"game_id": gameID, "function": function}).Add(float64(count))
}

func (metrics prometheusMetrics) AddCandidatesExcluded(gameID, function, reason string, count int) {
	if count <= 0 {
		return
	}
	metrics.candidatesExcluded.With(prometheus.Labels{"game_id": gameID, "function": function, "reason": reason}).Add(float64(count))
}

func (metrics prometheusMetrics) AddAutoMatchGroupsFormed(gameID string, groups int, members int) {
	metrics.groupsFormed.With(prometheus.Labels{"game_id": gameID}).Add(float64(groups))
	metrics.groupMembers.With(prometheus.Labels{"game_id": gameID}).Add(float64(members))
}
