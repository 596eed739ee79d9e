package workflow

import (
	"context"
	"fmt"
	"strings"

	"github.com/cadencehq/cadence/internal/prompts"
)

// ComposePrompt builds a prompt by combining tunable instructions, the
// immutable output specification, and stage-specific context for a
// given workflow stage.
func ComposePrompt(
	ctx context.Context,
	ps prompts.System,
	stage prompts.Stage,
	stageContext string,
) (string, error) {
	instructions, err := ps.Instructions(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load instructions for %s: %w", stage, err)
	}

	spec, err := ps.Spec(ctx, stage)
	if err != nil {
		return "", fmt.Errorf("load spec for %s: %w", stage, err)
	}

	var sb strings.Builder
	sb.WriteString(instructions)
	sb.WriteString("\n\n")
	sb.WriteString(spec)

	if stageContext != "" {
		sb.WriteString("\n\n")
		sb.WriteString(stageContext)
	}

	return sb.String(), nil
}
