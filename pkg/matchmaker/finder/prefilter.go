// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package finder

import (
	"github.com/elliotchance/pie/v2"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

// matchTeam applies the hard filters of criteria to a team candidate.
func matchTeam(criteria *models.SearchCriteria, request *models.MatchRequest, team *models.Team) bool {
	// restrict to one game
	if team.GameID != criteria.GameID {
		return false
	}

	if criteria.ServerID != "" && team.ServerID != criteria.ServerID {
		return false
	}

	if criteria.Region != "" && !models.SameRegion(team.Region, criteria.Region) {
		return false
	}

	if criteria.Role != "" && !team.NeedsRole(criteria.Role) {
		return false
	}

	if !criteria.InSkillRange(request.SkillTier, team.SkillTier) {
		return false
	}

	return !criteria.IsExcluded(team.TeamID)
}

// matchRequest applies the hard filters of criteria to a match request candidate.
func matchRequest(criteria *models.SearchCriteria, team *models.Team, request *models.MatchRequest) bool {
	if request.GameID != criteria.GameID {
		return false
	}

	if !request.IsActive() {
		return false
	}

	if criteria.ServerID != "" && request.ServerID != criteria.ServerID {
		return false
	}

	if criteria.Region != "" && !models.SameRegion(request.Region, criteria.Region) {
		return false
	}

	if criteria.Role != "" && !pie.Contains(request.GetRoles(), models.NormalizeRole(criteria.Role)) {
		return false
	}

	if !criteria.InSkillRange(team.SkillTier, request.SkillTier) {
		return false
	}

	// a request is excluded by its own id or by its player
	return !criteria.IsExcluded(request.RequestID) && !criteria.IsExcluded(request.UserID)
}
