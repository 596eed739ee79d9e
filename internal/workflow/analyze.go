package workflow

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cadencehq/cadence/internal/prompts"
	"github.com/cadencehq/cadence/pkg/formatting"
)

// AnalyzeNode returns a state node that sends the transcript to the
// model for qualification and stores the normalized AnalysisResult in
// the workflow state bag.
func AnalyzeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		transcript, err := extractTranscript(s)
		if err != nil {
			return s, fmt.Errorf("analyze: %w", err)
		}

		prompt, err := ComposePrompt(ctx, rt.Prompts, prompts.StageAnalyze, transcript)
		if err != nil {
			return s, fmt.Errorf("analyze: %w: %w", ErrAnalyzeFailed, err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("analyze: %w: create agent: %w", ErrAnalyzeFailed, err)
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return s, fmt.Errorf("analyze: %w: chat call: %w", ErrAnalyzeFailed, err)
		}

		result, err := formatting.Parse[AnalysisResult](resp.Content())
		if err != nil {
			return s, fmt.Errorf("analyze: %w: parse response: %w", ErrAnalyzeFailed, err)
		}

		result.Normalize()

		rt.Logger.InfoContext(
			ctx, "analyze node complete",
			"lead_status", result.LeadStatus,
			"lead_score", result.LeadScore,
			"recommended_action", result.RecommendedAction,
		)

		s = s.Set(KeyAnalysis, result)
		return s, nil
	})
}

func extractTranscript(s state.State) (string, error) {
	val, ok := s.Get(KeyTranscript)
	if !ok {
		return "", fmt.Errorf("%w: missing %s in state", ErrAnalyzeFailed, KeyTranscript)
	}

	transcript, ok := val.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is not string", ErrAnalyzeFailed, KeyTranscript)
	}

	return transcript, nil
}
