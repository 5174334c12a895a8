// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-team-matcher/pkg/common"
	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
)

// testLogger is quiet unless TEST_LOG_LEVEL asks for more, e.g. TEST_LOG_LEVEL=debug go test ./...
var testLogger = newTestLogger()

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(common.GetEnv("TEST_LOG_LEVEL", "warn"))
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}

// NewTestScope creates a new scope for test use
func NewTestScope() *envelope.Scope {
	return NewNamedTestScope("test")
}

// NewNamedTestScope creates a root scope named after the running test.
func NewNamedTestScope(name string) *envelope.Scope {
	scope := envelope.NewRootScope(context.Background(), name, "")
	scope.SetLogger(testLogger)
	return scope
}
