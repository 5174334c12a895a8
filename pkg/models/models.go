// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"strings"
	"time"

	"github.com/AccelByte/extend-team-matcher/pkg/utils"

	validator "github.com/AccelByte/justice-input-validation-go"
	"github.com/elliotchance/pie/v2"
	"github.com/mitchellh/copystructure"
	"github.com/sirupsen/logrus"
)

// SkillTier is the declared proficiency of a player or a team.
type SkillTier string

const (
	SkillTierBeginner     SkillTier = "beginner"
	SkillTierIntermediate SkillTier = "intermediate"
	SkillTierAdvanced     SkillTier = "advanced"
	SkillTierExpert       SkillTier = "expert"
)

// SkillTiers lists the tiers in ascending order.
var SkillTiers = []SkillTier{SkillTierBeginner, SkillTierIntermediate, SkillTierAdvanced, SkillTierExpert}

// Ordinal returns the position of the tier (0-3), or -1 for an unknown tier.
func (s SkillTier) Ordinal() int {
	for i, tier := range SkillTiers {
		if tier == s {
			return i
		}
	}
	return -1
}

func (s SkillTier) IsValid() bool {
	return s.Ordinal() >= 0
}

// TimeSlot is a symbolic availability window.
type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
	TimeSlotNight     TimeSlot = "night"

	// TimeSlotFlexible matches every other window.
	TimeSlotFlexible TimeSlot = "flexible"
)

// ConcreteTimeSlots are all windows except the flexible sentinel.
var ConcreteTimeSlots = []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening, TimeSlotNight}

func (t TimeSlot) IsValid() bool {
	return t == TimeSlotFlexible || pie.Contains(ConcreteTimeSlots, t)
}

// RequestStatus is the lifecycle state of a MatchRequest.
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusMatched   RequestStatus = "matched"
	RequestStatusCancelled RequestStatus = "cancelled"
	RequestStatusExpired   RequestStatus = "expired"
)

// RecruitmentState tells whether a team accepts new members.
type RecruitmentState string

const (
	RecruitmentOpen   RecruitmentState = "open"
	RecruitmentClosed RecruitmentState = "closed"
)

// TeamStatus is the lifecycle state of a Team.
type TeamStatus string

const (
	TeamStatusRecruiting TeamStatus = "recruiting"
	TeamStatusFull       TeamStatus = "full"
	TeamStatusActive     TeamStatus = "active"
	TeamStatusDisbanded  TeamStatus = "disbanded"
)

// MatchRequest is one player's search for a team in a game.
// An empty Status is read as active.
type MatchRequest struct {
	RequestID    string        `json:"request_id"             valid:"stringlength(1|128)"`
	UserID       string        `json:"user_id"                valid:"stringlength(1|128)"`
	GameID       string        `json:"game_id"                valid:"stringlength(1|128)"`
	ServerID     string        `json:"server_id,omitempty"    optional:"true"`
	Roles        []string      `json:"roles,omitempty"        optional:"true"`
	SkillTier    SkillTier     `json:"skill_tier"             valid:"in(beginner|intermediate|advanced|expert)"`
	Region       string        `json:"region,omitempty"       optional:"true"`
	Availability []TimeSlot    `json:"availability,omitempty" optional:"true"`
	Languages    []string      `json:"languages,omitempty"    optional:"true"`
	Status       RequestStatus `json:"status,omitempty"       optional:"true"`
	CreatedAt    int64         `json:"created_at"`
}

// IsActive tells whether the request still searches for a team.
func (r *MatchRequest) IsActive() bool {
	return r.Status == "" || r.Status == RequestStatusActive
}

// IsExpired reports whether the request outlived ttl at now. A zero ttl never expires.
func (r *MatchRequest) IsExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(time.Unix(r.CreatedAt, 0)) > ttl
}

// GetRoles returns the requested roles without duplicates, keeping their order.
func (r *MatchRequest) GetRoles() []string {
	return normalizeSet(r.Roles)
}

// GetLanguages returns the lower-cased language codes without duplicates.
func (r *MatchRequest) GetLanguages() []string {
	return normalizeLanguages(r.Languages)
}

// Key is a stable string of every field that affects how the request is filtered and scored.
// Two versions of the same request id with different attributes get different keys.
func (r *MatchRequest) Key() string {
	availability := pie.Map(r.Availability, func(slot TimeSlot) string { return string(slot) })
	return strings.Join([]string{
		r.GameID,
		r.ServerID,
		string(r.SkillTier),
		strings.Join(r.GetRoles(), ","),
		strings.ToUpper(strings.TrimSpace(r.Region)),
		strings.Join(availability, ","),
		strings.Join(r.GetLanguages(), ","),
	}, "|")
}

// Validate returns a *ValidationError when the request is malformed.
func (r *MatchRequest) Validate() error {
	if strings.TrimSpace(r.RequestID) == "" {
		return ErrMissingRequestID
	}
	if strings.TrimSpace(r.UserID) == "" {
		return ErrMissingUserID
	}
	if strings.TrimSpace(r.GameID) == "" {
		return ErrMissingGameID
	}
	if !r.SkillTier.IsValid() {
		return ErrUnknownSkillTier
	}
	for _, slot := range r.Availability {
		if !slot.IsValid() {
			return ErrUnknownTimeSlot
		}
	}
	switch r.Status {
	case "", RequestStatusActive, RequestStatusMatched, RequestStatusCancelled, RequestStatusExpired:
	default:
		return ErrUnknownRequestStatus
	}
	if r.CreatedAt < 0 {
		return ErrNegativeCreatedAt
	}
	if _, err := validator.ValidateStruct(r); err != nil {
		return newValidationError("match_request", err.Error())
	}
	return nil
}

// Team is a recruiting group in a game. The engine never mutates it.
// An empty Recruitment is read as open.
type Team struct {
	TeamID          string           `json:"team_id"                    valid:"stringlength(1|128)"`
	GameID          string           `json:"game_id"                    valid:"stringlength(1|128)"`
	ServerID        string           `json:"server_id,omitempty"        optional:"true"`
	SkillTier       SkillTier        `json:"skill_tier"                 valid:"in(beginner|intermediate|advanced|expert)"`
	CurrentSize     int              `json:"current_size"`
	MaxSize         int              `json:"max_size"`
	NeededRoles     map[string]int   `json:"needed_roles,omitempty"     optional:"true"`
	Region          string           `json:"region,omitempty"           optional:"true"`
	ActivityWindows []TimeSlot       `json:"activity_windows,omitempty" optional:"true"`
	Languages       []string         `json:"languages,omitempty"        optional:"true"`
	Recruitment     RecruitmentState `json:"recruitment,omitempty"      optional:"true"`
	Status          TeamStatus       `json:"status,omitempty"           optional:"true"`
}

// IsFull tells whether the team reached its capacity.
func (t *Team) IsFull() bool {
	return t.CurrentSize >= t.MaxSize
}

// IsJoinable is the capacity guard: full, closed and disbanded teams are never candidates.
func (t *Team) IsJoinable() bool {
	if t.IsFull() {
		return false
	}
	if t.Recruitment == RecruitmentClosed {
		return false
	}
	return t.Status != TeamStatusDisbanded
}

// GetNeededRoles returns the still-needed roles keyed by lower-cased role name.
func (t *Team) GetNeededRoles() map[string]int {
	needed := make(map[string]int, len(t.NeededRoles))
	for role, count := range t.NeededRoles {
		role = NormalizeRole(role)
		if role == "" {
			continue
		}
		needed[role] += count
	}
	return needed
}

// NeedsRole tells whether the team still needs at least one player for role.
func (t *Team) NeedsRole(role string) bool {
	return t.GetNeededRoles()[NormalizeRole(role)] > 0
}

// GetLanguages returns the lower-cased language codes without duplicates.
func (t *Team) GetLanguages() []string {
	return normalizeLanguages(t.Languages)
}

// Validate returns a *ValidationError when the team is malformed.
func (t *Team) Validate() error {
	if strings.TrimSpace(t.TeamID) == "" {
		return ErrMissingTeamID
	}
	if strings.TrimSpace(t.GameID) == "" {
		return ErrMissingGameID
	}
	if !t.SkillTier.IsValid() {
		return ErrUnknownSkillTier
	}
	if t.CurrentSize < 0 || t.MaxSize < 0 {
		return ErrNegativeCapacity
	}
	if t.MaxSize < 1 {
		return ErrZeroMaxSize
	}
	if t.CurrentSize > t.MaxSize {
		return ErrCurrentExceedsMax
	}
	for _, count := range t.NeededRoles {
		if count < 0 {
			return ErrNegativeRoleCount
		}
	}
	for _, slot := range t.ActivityWindows {
		if !slot.IsValid() {
			return ErrUnknownTimeSlot
		}
	}
	switch t.Recruitment {
	case "", RecruitmentOpen, RecruitmentClosed:
	default:
		return ErrUnknownRecruitmentState
	}
	switch t.Status {
	case "", TeamStatusRecruiting, TeamStatusFull, TeamStatusActive, TeamStatusDisbanded:
	default:
		return ErrUnknownTeamStatus
	}
	if _, err := validator.ValidateStruct(t); err != nil {
		return newValidationError("team", err.Error())
	}
	return nil
}

// CompatibilityResult is the score of one request against one team.
type CompatibilityResult struct {
	TotalScore float64            `json:"total_score"`
	Breakdown  map[string]float64 `json:"breakdown"`
	Reasons    []string           `json:"reasons"`
	RequestID  string             `json:"request_id"`
	TeamID     string             `json:"team_id"`

	Request *MatchRequest `json:"request,omitempty"`
	Team    *Team         `json:"team,omitempty"`
}

// AutoMatchGroup is a virtual team formed from unmatched requests.
// The caller persists it as a real Team.
type AutoMatchGroup struct {
	GroupID      string         `json:"group_id"`
	GameID       string         `json:"game_id"`
	Members      []MatchRequest `json:"members"`
	AverageScore float64        `json:"average_score"`
}

// GetMemberRequestIDs returns the request ids of the group in joining order.
func (g *AutoMatchGroup) GetMemberRequestIDs() []string {
	return pie.Map(g.Members, func(m MatchRequest) string { return m.RequestID })
}

// GetMemberUserIDs returns the user ids of the group in joining order.
func (g *AutoMatchGroup) GetMemberUserIDs() []string {
	return pie.Map(g.Members, func(m MatchRequest) string { return m.UserID })
}

// NormalizeRole is the canonical form of role and language names.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

// SameRegion compares region codes ignoring case and surrounding spaces.
// Two empty regions are the same.
func SameRegion(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func normalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = NormalizeRole(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return utils.UniqueOrdered(out)
}

func normalizeLanguages(values []string) []string {
	return normalizeSet(values)
}

// CopyResults deep copies results, including the request and team they point to.
func CopyResults(results []CompatibilityResult) []CompatibilityResult {
	if results == nil {
		return nil
	}
	copied, err := copystructure.Copy(results)
	if err != nil {
		logrus.Warn("failed copy compatibility results:", err)
		return nil
	}
	copyResults, _ := copied.([]CompatibilityResult)
	return copyResults
}
