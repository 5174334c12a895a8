// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"fmt"

	"github.com/AccelByte/extend-team-matcher/pkg/models"
)

const SampleGameID = "cs2"

// SampleRequest is an intermediate NA evening english player looking for an awper or support slot.
func SampleRequest() models.MatchRequest {
	return models.MatchRequest{
		RequestID:    "request-1",
		UserID:       "user-1",
		GameID:       SampleGameID,
		Roles:        []string{"awper", "support"},
		SkillTier:    models.SkillTierIntermediate,
		Region:       "NA",
		Availability: []models.TimeSlot{models.TimeSlotEvening},
		Languages:    []string{"en"},
		Status:       models.RequestStatusActive,
		CreatedAt:    1700000000,
	}
}

// SampleTeam fits SampleRequest on every factor.
func SampleTeam() models.Team {
	return models.Team{
		TeamID:          "team-1",
		GameID:          SampleGameID,
		SkillTier:       models.SkillTierIntermediate,
		CurrentSize:     3,
		MaxSize:         5,
		NeededRoles:     map[string]int{"awper": 1, "support": 1},
		Region:          "NA",
		ActivityWindows: []models.TimeSlot{models.TimeSlotEvening},
		Languages:       []string{"en"},
		Recruitment:     models.RecruitmentOpen,
		Status:          models.TeamStatusRecruiting,
	}
}

// SampleTeams returns count open teams numbered from team-00.
func SampleTeams(count int) []models.Team {
	teams := make([]models.Team, 0, count)
	for i := 0; i < count; i++ {
		team := SampleTeam()
		team.TeamID = fmt.Sprintf("team-%02d", i)
		teams = append(teams, team)
	}
	return teams
}

// SampleRequests returns count active requests numbered from request-00, one second apart.
func SampleRequests(count int) []models.MatchRequest {
	requests := make([]models.MatchRequest, 0, count)
	for i := 0; i < count; i++ {
		request := SampleRequest()
		request.RequestID = fmt.Sprintf("request-%02d", i)
		request.UserID = fmt.Sprintf("user-%02d", i)
		request.CreatedAt += int64(i)
		requests = append(requests, request)
	}
	return requests
}
