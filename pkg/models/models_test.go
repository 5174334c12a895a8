// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"errors"
	"testing"
	"time"

	"github.com/go-openapi/swag"
	"github.com/stretchr/testify/assert"
)

func validRequest() MatchRequest {
	return MatchRequest{
		RequestID:    "request-1",
		UserID:       "user-1",
		GameID:       "cs2",
		Roles:        []string{"awper"},
		SkillTier:    SkillTierIntermediate,
		Availability: []TimeSlot{TimeSlotEvening, TimeSlotFlexible},
		CreatedAt:    1700000000,
	}
}

func validTeam() Team {
	return Team{
		TeamID:      "team-1",
		GameID:      "cs2",
		SkillTier:   SkillTierAdvanced,
		CurrentSize: 0,
		MaxSize:     5,
		NeededRoles: map[string]int{"awper": 1},
	}
}

func TestMatchRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(r *MatchRequest)
		expected error
	}{
		{name: "valid", modify: func(r *MatchRequest) {}, expected: nil},
		{name: "missing request id", modify: func(r *MatchRequest) { r.RequestID = " " }, expected: ErrMissingRequestID},
		{name: "missing user id", modify: func(r *MatchRequest) { r.UserID = "" }, expected: ErrMissingUserID},
		{name: "missing game id", modify: func(r *MatchRequest) { r.GameID = "" }, expected: ErrMissingGameID},
		{name: "unknown skill tier", modify: func(r *MatchRequest) { r.SkillTier = "grandmaster" }, expected: ErrUnknownSkillTier},
		{name: "empty skill tier", modify: func(r *MatchRequest) { r.SkillTier = "" }, expected: ErrUnknownSkillTier},
		{name: "unknown time slot", modify: func(r *MatchRequest) { r.Availability = []TimeSlot{"dawn"} }, expected: ErrUnknownTimeSlot},
		{name: "unknown status", modify: func(r *MatchRequest) { r.Status = "paused" }, expected: ErrUnknownRequestStatus},
		{name: "negative creation time", modify: func(r *MatchRequest) { r.CreatedAt = -1 }, expected: ErrNegativeCreatedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := validRequest()
			tt.modify(&request)

			err := request.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTeam_Validate(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(t *Team)
		expected error
	}{
		{name: "valid", modify: func(t *Team) {}, expected: nil},
		{name: "missing team id", modify: func(t *Team) { t.TeamID = "" }, expected: ErrMissingTeamID},
		{name: "missing game id", modify: func(t *Team) { t.GameID = "" }, expected: ErrMissingGameID},
		{name: "unknown skill tier", modify: func(t *Team) { t.SkillTier = "pro" }, expected: ErrUnknownSkillTier},
		{name: "negative capacity", modify: func(t *Team) { t.CurrentSize = -1 }, expected: ErrNegativeCapacity},
		{name: "zero max size", modify: func(t *Team) { t.MaxSize = 0 }, expected: ErrZeroMaxSize},
		{name: "current above max", modify: func(t *Team) { t.CurrentSize = 6 }, expected: ErrCurrentExceedsMax},
		{name: "negative role count", modify: func(t *Team) { t.NeededRoles["support"] = -1 }, expected: ErrNegativeRoleCount},
		{name: "unknown activity window", modify: func(t *Team) { t.ActivityWindows = []TimeSlot{"lunch"} }, expected: ErrUnknownTimeSlot},
		{name: "unknown recruitment", modify: func(t *Team) { t.Recruitment = "invite-only" }, expected: ErrUnknownRecruitmentState},
		{name: "unknown status", modify: func(t *Team) { t.Status = "archived" }, expected: ErrUnknownTeamStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := validTeam()
			tt.modify(&team)

			err := team.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expected)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestTeam_IsJoinable(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(t *Team)
		expected bool
	}{
		{name: "open team with room", modify: func(t *Team) {}, expected: true},
		{name: "full", modify: func(t *Team) { t.CurrentSize = t.MaxSize }, expected: false},
		{name: "closed", modify: func(t *Team) { t.Recruitment = RecruitmentClosed }, expected: false},
		{name: "disbanded", modify: func(t *Team) { t.Status = TeamStatusDisbanded }, expected: false},
		{name: "active team still recruiting", modify: func(t *Team) { t.Status = TeamStatusActive }, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team := validTeam()
			tt.modify(&team)
			assert.Equal(t, tt.expected, team.IsJoinable())
		})
	}
}

func TestMatchRequest_IsExpired(t *testing.T) {
	request := validRequest()
	created := time.Unix(request.CreatedAt, 0)

	assert.False(t, request.IsExpired(created.Add(23*time.Hour), 24*time.Hour))
	assert.False(t, request.IsExpired(created.Add(24*time.Hour), 24*time.Hour))
	assert.True(t, request.IsExpired(created.Add(25*time.Hour), 24*time.Hour))
	assert.False(t, request.IsExpired(created.Add(1000*time.Hour), 0))
}

func TestMatchRequest_IsActive(t *testing.T) {
	request := validRequest()
	assert.True(t, request.IsActive())

	request.Status = RequestStatusActive
	assert.True(t, request.IsActive())

	for _, status := range []RequestStatus{RequestStatusMatched, RequestStatusCancelled, RequestStatusExpired} {
		request.Status = status
		assert.False(t, request.IsActive(), status)
	}
}

func TestNormalizedSets(t *testing.T) {
	request := validRequest()
	request.Roles = []string{" AWPer", "support", "awper", ""}
	request.Languages = []string{"EN", "en", "De"}

	assert.Equal(t, []string{"awper", "support"}, request.GetRoles())
	assert.Equal(t, []string{"en", "de"}, request.GetLanguages())

	team := validTeam()
	team.NeededRoles = map[string]int{"AWPer": 1, "IGL": 0, " support ": 2}

	assert.Equal(t, map[string]int{"awper": 1, "igl": 0, "support": 2}, team.GetNeededRoles())
	assert.True(t, team.NeedsRole("awper"))
	assert.True(t, team.NeedsRole("Support"))
	assert.False(t, team.NeedsRole("igl"))
	assert.False(t, team.NeedsRole("entry"))
}

func TestSkillTier_Ordinal(t *testing.T) {
	assert.Equal(t, 0, SkillTierBeginner.Ordinal())
	assert.Equal(t, 3, SkillTierExpert.Ordinal())
	assert.Equal(t, -1, SkillTier("legend").Ordinal())
	assert.False(t, SkillTier("").IsValid())
}

func TestSearchCriteria(t *testing.T) {
	criteria := SearchCriteria{SkillRange: swag.Int(1), ExcludeIDs: []string{"team-2", "team-1"}, Role: " IGL "}

	assert.True(t, criteria.InSkillRange(SkillTierIntermediate, SkillTierBeginner))
	assert.True(t, criteria.InSkillRange(SkillTierIntermediate, SkillTierAdvanced))
	assert.False(t, criteria.InSkillRange(SkillTierIntermediate, SkillTierExpert))
	assert.True(t, (&SearchCriteria{}).InSkillRange(SkillTierBeginner, SkillTierExpert))

	assert.True(t, criteria.IsExcluded("team-1"))
	assert.False(t, criteria.IsExcluded("team-3"))

	assert.Equal(t, "igl", criteria.CandidateFilter().Role)

	reordered := SearchCriteria{SkillRange: swag.Int(1), ExcludeIDs: []string{"team-1", "team-2"}, Role: "igl"}
	assert.Equal(t, criteria.Key(), reordered.Key())
	assert.NotEqual(t, criteria.Key(), (&SearchCriteria{}).Key())

	assert.NoError(t, criteria.Validate())
	assert.ErrorIs(t, (&SearchCriteria{SkillRange: swag.Int(-1)}).Validate(), ErrInvalidInput)
}

func TestMatchRequest_Key(t *testing.T) {
	request := validRequest()
	request.Region = "NA"
	request.Languages = []string{"en"}

	same := request
	same.Roles = []string{" AWPER ", "awper"}
	same.Region = " na"
	same.Languages = []string{"EN"}
	same.CreatedAt = 1800000000
	assert.Equal(t, request.Key(), same.Key())

	tests := []struct {
		name   string
		change func(r *MatchRequest)
	}{
		{name: "skill tier", change: func(r *MatchRequest) { r.SkillTier = SkillTierExpert }},
		{name: "roles", change: func(r *MatchRequest) { r.Roles = []string{"entry"} }},
		{name: "region", change: func(r *MatchRequest) { r.Region = "EU" }},
		{name: "availability", change: func(r *MatchRequest) { r.Availability = []TimeSlot{TimeSlotMorning} }},
		{name: "languages", change: func(r *MatchRequest) { r.Languages = []string{"de"} }},
		{name: "game", change: func(r *MatchRequest) { r.GameID = "valorant" }},
		{name: "server", change: func(r *MatchRequest) { r.ServerID = "server-2" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := request
			tt.change(&changed)
			assert.NotEqual(t, request.Key(), changed.Key())
		})
	}
}

func TestSameRegion(t *testing.T) {
	assert.True(t, SameRegion("NA", "na"))
	assert.True(t, SameRegion(" eu ", "EU"))
	assert.True(t, SameRegion("", ""))
	assert.False(t, SameRegion("NA", "EU"))
	assert.False(t, SameRegion("NA", ""))
}

func TestValidationErrorCode(t *testing.T) {
	assert.Equal(t, 510205, ValidationErrorCode(ErrUnknownSkillTier))
	assert.Equal(t, 510218, ValidationErrorCode(ErrDuplicateUser))
	assert.Equal(t, 20002, ValidationErrorCode(NewValidationError("criteria", "bad")))
	assert.Equal(t, 20002, ValidationErrorCode(errors.New("boom")))
}

func TestAutoMatchGroup_MemberIDs(t *testing.T) {
	first := validRequest()
	second := validRequest()
	second.RequestID = "request-2"
	second.UserID = "user-2"
	group := AutoMatchGroup{Members: []MatchRequest{first, second}}

	assert.Equal(t, []string{"request-1", "request-2"}, group.GetMemberRequestIDs())
	assert.Equal(t, []string{"user-1", "user-2"}, group.GetMemberUserIDs())
}
