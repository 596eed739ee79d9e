package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs the analysis workflow for a single conversation. It
// builds the state graph (load → analyze → draft? → finalize),
// executes it, and extracts the Result from the final state.
func Execute(ctx context.Context, rt *Runtime, conversationID uuid.UUID) (*Result, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyConversationID, conversationID)

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractResult(finalState)
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("cadence-analyze")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	if err := graph.AddNode("load", LoadNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("analyze", AnalyzeNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("draft", DraftNode(rt)); err != nil {
		return nil, err
	}

	if err := graph.AddNode("finalize", FinalizeNode(rt)); err != nil {
		return nil, err
	}

	// load → analyze (unconditional)
	if err := graph.AddEdge("load", "analyze", nil); err != nil {
		return nil, err
	}

	// analyze → draft (when a follow-up is recommended)
	if err := graph.AddEdge("analyze", "draft", wantsFollowUp); err != nil {
		return nil, err
	}

	// analyze → finalize (when no follow-up is warranted)
	if err := graph.AddEdge("analyze", "finalize", state.Not(wantsFollowUp)); err != nil {
		return nil, err
	}

	// draft → finalize (unconditional)
	if err := graph.AddEdge("draft", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("load"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func extractResult(s state.State) (*Result, error) {
	idVal, ok := s.Get(KeyConversationID)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyConversationID)
	}

	conversationID, ok := idVal.(uuid.UUID)
	if !ok {
		return nil, fmt.Errorf("%s is not uuid.UUID", KeyConversationID)
	}

	analysisVal, ok := s.Get(KeyAnalysis)
	if !ok {
		return nil, fmt.Errorf("missing %s in final state", KeyAnalysis)
	}

	analysis, ok := analysisVal.(AnalysisResult)
	if !ok {
		return nil, fmt.Errorf("%s is not AnalysisResult", KeyAnalysis)
	}

	result := &Result{
		ConversationID: conversationID,
		Analysis:       analysis,
		CompletedAt:    time.Now(),
	}

	if draftVal, ok := s.Get(KeyDraft); ok {
		if draft, ok := draftVal.(string); ok && draft != "" {
			result.Draft = &draft
		}
	}

	return result, nil
}

func wantsFollowUp(s state.State) bool {
	val, ok := s.Get(KeyAnalysis)
	if !ok {
		return false
	}

	analysis, ok := val.(AnalysisResult)
	if !ok {
		return false
	}

	return analysis.IsRelevant && analysis.RecommendedAction == "follow_up"
}
