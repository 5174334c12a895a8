// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package utils

import (
	"strings"

	"github.com/google/uuid"
)

// groupNamespace seeds the name-based ids of auto-match groups.
var groupNamespace = uuid.MustParse("5b0f3c2e-8f2a-4a57-9d0c-1f6f0b5e7a31")

// GenerateUUID generates uuid without hyphens.
func GenerateUUID() string {
	id, _ := uuid.NewRandom()
	return strings.ReplaceAll(id.String(), "-", "")
}

// GenerateGroupID derives a stable id from the member ids, so the same members always get the same id.
func GenerateGroupID(memberIDs []string) string {
	id := uuid.NewSHA1(groupNamespace, []byte(strings.Join(memberIDs, ",")))
	return strings.ReplaceAll(id.String(), "-", "")
}

// UniqueOrdered removes duplicates and keeps the first occurrence order.
func UniqueOrdered[T comparable](list []T) []T {
	seen := make(map[T]struct{}, len(list))
	out := make([]T, 0, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
