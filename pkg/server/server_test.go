// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/automatch"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/compatibility"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/finder"
	"github.com/AccelByte/extend-team-matcher/pkg/matchmaker/ranker"
	"github.com/AccelByte/extend-team-matcher/pkg/metrics"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
	"github.com/AccelByte/extend-team-matcher/pkg/repository"
	"github.com/AccelByte/extend-team-matcher/pkg/testsetup"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *Server {
	registry := prometheus.NewRegistry()
	matchmakingMetrics := metrics.NewMetrics(registry)
	calculator := compatibility.NewDefaultCalculator()

	memory := repository.NewMemoryRepository()
	require.NoError(t, memory.Replace(repository.Snapshot{
		Teams:    testsetup.SampleTeams(3),
		Requests: testsetup.SampleRequests(4),
	}))

	f := finder.New(memory, ranker.New(calculator, matchmakingMetrics), matchmakingMetrics, finder.WithRequestTTL(0))
	a := automatch.New(calculator, matchmakingMetrics, automatch.WithRequestTTL(0))
	return New(f, a, memory, registry, AutoMatchDefaults{MaxGroups: 10, GroupSize: 2})
}

func post(t *testing.T, server *Server, path string, body interface{}) *httptest.ResponseRecorder {
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	request := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)
	return recorder
}

func TestFindTeams(t *testing.T) {
	server := newTestServer(t)

	recorder := post(t, server, "/match/find-teams", FindTeamsRequest{Request: testsetup.SampleRequest()})
	require.Equal(t, http.StatusOK, recorder.Code)

	var results []models.CompatibilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "team-00", results[0].TeamID)
	assert.Equal(t, 100.0, results[0].TotalScore)
	assert.Equal(t, 100.0, results[0].Breakdown["skill"])
}

func TestFindTeams_InvalidInput(t *testing.T) {
	server := newTestServer(t)
	request := testsetup.SampleRequest()
	request.SkillTier = "legend"

	recorder := post(t, server, "/match/find-teams", FindTeamsRequest{Request: request})
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, models.ValidationErrorCode(models.ErrUnknownSkillTier), response.ErrorCode)
}

func TestFindTeams_MalformedBody(t *testing.T) {
	server := newTestServer(t)

	request := httptest.NewRequest(http.MethodPost, "/match/find-teams", bytes.NewBufferString("{"))
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestFindTeammates(t *testing.T) {
	server := newTestServer(t)

	recorder := post(t, server, "/match/find-teammates", FindTeammatesRequest{Team: testsetup.SampleTeam()})
	require.Equal(t, http.StatusOK, recorder.Code)

	var results []models.CompatibilityResult
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &results))
	require.Len(t, results, 4)
	assert.Equal(t, "request-00", results[0].RequestID)
}

func TestAutoMatch(t *testing.T) {
	server := newTestServer(t)

	recorder := post(t, server, "/match/auto", AutoMatchRequest{GameID: testsetup.SampleGameID})
	require.Equal(t, http.StatusOK, recorder.Code)

	var groups []models.AutoMatchGroup
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &groups))
	require.Len(t, groups, 2)
	assert.Equal(t, []string{"request-00", "request-01"}, groups[0].GetMemberRequestIDs())

	maxGroups := 1
	recorder = post(t, server, "/match/auto", AutoMatchRequest{GameID: testsetup.SampleGameID, MaxGroups: &maxGroups})
	require.Equal(t, http.StatusOK, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &groups))
	assert.Len(t, groups, 1)

	groupSize := 1
	recorder = post(t, server, "/match/auto", AutoMatchRequest{GameID: testsetup.SampleGameID, GroupSize: &groupSize})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = post(t, server, "/match/auto", AutoMatchRequest{})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	server := newTestServer(t)
	post(t, server, "/match/find-teams", FindTeamsRequest{Request: testsetup.SampleRequest()})

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "ab_teammatcher_candidates_scored_total")
}
