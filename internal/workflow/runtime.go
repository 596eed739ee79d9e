package workflow

import (
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/cadencehq/cadence/internal/conversations"
	"github.com/cadencehq/cadence/internal/prompts"
	"github.com/cadencehq/cadence/internal/prospects"
)

// Runtime bundles the dependencies that workflow nodes require.
// It is constructed by higher-level composition code from Infrastructure and Domain systems.
type Runtime struct {
	Agent         gaconfig.AgentConfig
	Conversations conversations.System
	Prospects     prospects.System
	Prompts       prompts.System
	Logger        *slog.Logger
}
