// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package envelope

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewRootScope_GeneratesTraceID(t *testing.T) {
	scope := NewRootScope(context.Background(), "test", "")
	defer scope.Finish()

	assert.Len(t, scope.TraceID, 32)
}

func TestNewRootScope_KeepsValidTraceID(t *testing.T) {
	traceID := "0123456789abcdef0123456789abcdef"
	scope := NewRootScope(context.Background(), "test", traceID)
	defer scope.Finish()

	assert.Equal(t, traceID, scope.TraceID)
}

func TestScope_ChildKeepsTraceIDAndLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)

	root := NewRootScope(context.Background(), "test", "")
	root.SetLogger(logger)
	defer root.Finish()

	child := root.NewChildScope("child").WithField("game", "cs2")
	defer child.Finish()
	child.SetAttributes(GameIDTag, "cs2")
	child.SetAttributes(CandidateCountTag, 3)
	child.RecordError(errors.New("boom"))
	child.Log.Info("hello")

	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Contains(t, buf.String(), root.TraceID)
	assert.Contains(t, buf.String(), "game=cs2")
}
