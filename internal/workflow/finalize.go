package workflow

import (
	"context"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// FinalizeNode returns the graph's exit node. All result data already
// lives in the state bag; this node only records completion.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		_, drafted := s.Get(KeyDraft)

		rt.Logger.InfoContext(
			ctx, "workflow complete",
			"drafted", drafted,
		)

		return s, nil
	})
}
