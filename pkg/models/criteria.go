// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package models

import (
	"fmt"
	"sort"
	"strings"
)

// CandidateFilter is what a CandidateRepository can filter on while reading the snapshot.
// Empty fields do not filter.
type CandidateFilter struct {
	ServerID string
	Region   string
	Role     string

	// OnlyJoinable keeps teams passing the capacity guard.
	OnlyJoinable bool
	// OnlyActive keeps active match requests.
	OnlyActive bool
}

// SearchCriteria are the caller's hard filters of a find call, applied before scoring.
type SearchCriteria struct {
	// GameID defaults to the game of the searching request or team.
	GameID   string `json:"game_id,omitempty"`
	ServerID string `json:"server_id,omitempty"`
	Region   string `json:"region,omitempty"`
	// Role keeps teams needing this role, or requests offering it.
	Role string `json:"role,omitempty"`
	// SkillRange keeps candidates within ±SkillRange tiers of the searcher.
	SkillRange *int `json:"skill_range,omitempty"`
	// ExcludeIDs are team ids or request ids never returned.
	ExcludeIDs []string `json:"exclude_ids,omitempty"`
}

// Validate returns a *ValidationError when the criteria are malformed.
func (c *SearchCriteria) Validate() error {
	if c.SkillRange != nil && *c.SkillRange < 0 {
		return newValidationError("skill_range", "skill range cannot be negative")
	}
	return nil
}

// CandidateFilter returns the part of the criteria a repository can apply.
func (c *SearchCriteria) CandidateFilter() CandidateFilter {
	return CandidateFilter{
		ServerID: c.ServerID,
		Region:   c.Region,
		Role:     NormalizeRole(c.Role),
	}
}

// InSkillRange tells whether tier is within the criteria skill range around reference.
func (c *SearchCriteria) InSkillRange(reference, tier SkillTier) bool {
	if c.SkillRange == nil {
		return true
	}
	distance := reference.Ordinal() - tier.Ordinal()
	if distance < 0 {
		distance = -distance
	}
	return distance <= *c.SkillRange
}

// IsExcluded tells whether id is listed in ExcludeIDs.
func (c *SearchCriteria) IsExcluded(id string) bool {
	for _, excluded := range c.ExcludeIDs {
		if excluded == id {
			return true
		}
	}
	return false
}

// Key is a stable string of the criteria, used in cache keys.
func (c *SearchCriteria) Key() string {
	skillRange := "any"
	if c.SkillRange != nil {
		skillRange = fmt.Sprint(*c.SkillRange)
	}
	excluded := append([]string(nil), c.ExcludeIDs...)
	sort.Strings(excluded)
	return strings.Join([]string{
		c.GameID, c.ServerID, c.Region, NormalizeRole(c.Role), skillRange, strings.Join(excluded, ","),
	}, "|")
}
