// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AccelByte/extend-team-matcher/pkg/common"
	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

const internalErrorCode = 20000

type FindTeamsRequest struct {
	Request  models.MatchRequest   `json:"request"`
	Criteria models.SearchCriteria `json:"criteria"`
}

type FindTeammatesRequest struct {
	Team     models.Team           `json:"team"`
	Criteria models.SearchCriteria `json:"criteria"`
}

type AutoMatchRequest struct {
	GameID    string `json:"game_id"`
	MaxGroups *int   `json:"max_groups,omitempty"`
	GroupSize *int   `json:"group_size,omitempty"`
}

type ErrorResponse struct {
	ErrorCode    int    `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) findTeams(c *gin.Context) {
	scope := envelope.NewRootScope(c.Request.Context(), "Server.FindTeams", "")
	defer scope.Finish()

	var body FindTeamsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, scope, models.NewValidationError("body", err.Error()))
		return
	}
	scope.Log.Debugf("find teams: %s", common.LogJSONFormatter(body))

	results, err := s.finder.FindTeams(scope, &body.Request, body.Criteria)
	if err != nil {
		writeError(c, scope, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) findTeammates(c *gin.Context) {
	scope := envelope.NewRootScope(c.Request.Context(), "Server.FindTeammates", "")
	defer scope.Finish()

	var body FindTeammatesRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, scope, models.NewValidationError("body", err.Error()))
		return
	}
	scope.Log.Debugf("find teammates: %s", common.LogJSONFormatter(body))

	results, err := s.finder.FindTeammates(scope, &body.Team, body.Criteria)
	if err != nil {
		writeError(c, scope, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (s *Server) autoMatch(c *gin.Context) {
	scope := envelope.NewRootScope(c.Request.Context(), "Server.AutoMatch", "")
	defer scope.Finish()

	var body AutoMatchRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		writeError(c, scope, models.NewValidationError("body", err.Error()))
		return
	}

	maxGroups := s.defaults.MaxGroups
	if body.MaxGroups != nil {
		maxGroups = *body.MaxGroups
	}
	groupSize := s.defaults.GroupSize
	if body.GroupSize != nil {
		groupSize = *body.GroupSize
	}

	groups, err := s.assembler.AssembleGame(scope, s.repository, body.GameID, maxGroups, groupSize)
	if err != nil {
		writeError(c, scope, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

// writeError answers 400 for invalid input and 500 for anything else.
func writeError(c *gin.Context, scope *envelope.Scope, err error) {
	scope.RecordError(err)
	if errors.Is(err, models.ErrInvalidInput) {
		scope.Log.WithError(err).Debug("invalid input")
		c.JSON(http.StatusBadRequest, ErrorResponse{
			ErrorCode:    models.ValidationErrorCode(err),
			ErrorMessage: err.Error(),
		})
		return
	}
	scope.Log.WithError(err).Error("unable to serve request")
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		ErrorCode:    internalErrorCode,
		ErrorMessage: err.Error(),
	})
}
