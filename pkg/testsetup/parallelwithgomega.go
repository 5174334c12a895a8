// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package testsetup

import (
	"testing"

	"github.com/onsi/gomega"

	"github.com/AccelByte/extend-team-matcher/pkg/envelope"
)

// GomegaWithScope bundles gomega assertions with a scope to pass to the engine.
type GomegaWithScope struct {
	TestScope *envelope.Scope
	*gomega.GomegaWithT
}

// ParallelWithGomega marks the test parallel. The scope span ends with the test.
func ParallelWithGomega(t *testing.T) GomegaWithScope {
	t.Parallel()
	scope := NewNamedTestScope(t.Name())
	t.Cleanup(scope.Finish)
	return GomegaWithScope{scope, gomega.NewGomegaWithT(t)}
}
