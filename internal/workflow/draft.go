package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/cadencehq/cadence/internal/prompts"
	"github.com/cadencehq/cadence/pkg/formatting"
)

// DraftNode returns a state node that generates the next follow-up
// message, steered by the analysis from the previous node. Only reached
// when the analysis recommends a follow-up.
func DraftNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		transcript, err := extractTranscript(s)
		if err != nil {
			return s, fmt.Errorf("draft: %w", err)
		}

		analysisVal, ok := s.Get(KeyAnalysis)
		if !ok {
			return s, fmt.Errorf("draft: %w: missing %s in state", ErrDraftFailed, KeyAnalysis)
		}

		analysis, ok := analysisVal.(AnalysisResult)
		if !ok {
			return s, fmt.Errorf("draft: %w: %s is not AnalysisResult", ErrDraftFailed, KeyAnalysis)
		}

		prompt, err := ComposePrompt(
			ctx, rt.Prompts, prompts.StageDraft,
			draftContext(transcript, analysis),
		)
		if err != nil {
			return s, fmt.Errorf("draft: %w: %w", ErrDraftFailed, err)
		}

		a, err := agent.New(&rt.Agent)
		if err != nil {
			return s, fmt.Errorf("draft: %w: create agent: %w", ErrDraftFailed, err)
		}

		resp, err := a.Chat(ctx, prompt)
		if err != nil {
			return s, fmt.Errorf("draft: %w: chat call: %w", ErrDraftFailed, err)
		}

		parsed, err := formatting.Parse[draftResponse](resp.Content())
		if err != nil {
			return s, fmt.Errorf("draft: %w: parse response: %w", ErrDraftFailed, err)
		}

		if strings.TrimSpace(parsed.Message) == "" {
			return s, fmt.Errorf("draft: %w: empty message", ErrDraftFailed)
		}

		rt.Logger.InfoContext(
			ctx, "draft node complete",
			"chars", len(parsed.Message),
		)

		s = s.Set(KeyDraft, parsed.Message)
		return s, nil
	})
}

// draftContext combines the transcript with the analysis signals the
// draft should build on.
func draftContext(transcript string, analysis AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString(transcript)
	sb.WriteString("\nAnalysis of this conversation:\n")
	fmt.Fprintf(&sb, "- Lead status: %s (score %d)\n", analysis.LeadStatus, analysis.LeadScore)
	fmt.Fprintf(&sb, "- Sentiment: %s, interest: %s\n", analysis.Sentiment, analysis.InterestLevel)

	if len(analysis.KeyPoints) > 0 {
		fmt.Fprintf(&sb, "- Key points: %s\n", strings.Join(analysis.KeyPoints, "; "))
	}

	if analysis.PersonalizationHints != "" {
		fmt.Fprintf(&sb, "- Personalization hints: %s\n", analysis.PersonalizationHints)
	}

	return sb.String()
}
