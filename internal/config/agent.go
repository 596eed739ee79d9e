package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentProviderName = "CADENCE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "CADENCE_AGENT_BASE_URL"
	EnvAgentToken        = "CADENCE_AGENT_TOKEN"
	EnvAgentDeployment   = "CADENCE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "CADENCE_AGENT_API_VERSION"
	EnvAgentAuthType     = "CADENCE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "CADENCE_AGENT_MODEL_NAME"
)

// AgentSection mirrors gaconfig.AgentConfig with toml tags. The go-agents
// structs only carry json tags, so go-toml would silently drop snake_case
// keys like base_url; decoding goes through this mirror instead.
type AgentSection struct {
	Name     string                `toml:"name"`
	Provider *AgentProviderSection `toml:"provider"`
	Model    *AgentModelSection    `toml:"model"`
}

type AgentProviderSection struct {
	Name    string         `toml:"name"`
	BaseURL string         `toml:"base_url"`
	Options map[string]any `toml:"options"`
}

type AgentModelSection struct {
	Name string `toml:"name"`
}

// AgentConfig converts the decoded section into the go-agents type
// consumed by the rest of the service.
func (s AgentSection) AgentConfig() gaconfig.AgentConfig {
	c := gaconfig.AgentConfig{Name: s.Name}
	if s.Provider != nil {
		c.Provider = &gaconfig.ProviderConfig{
			Name:    s.Provider.Name,
			BaseURL: s.Provider.BaseURL,
			Options: s.Provider.Options,
		}
	}
	if s.Model != nil {
		c.Model = &gaconfig.ModelConfig{Name: s.Model.Name}
	}
	return c
}

// FinalizeAgent applies the three-phase finalize pattern to a go-agents
// AgentConfig: defaults from go-agents DefaultAgentConfig, environment
// variable overrides, and validation.
func FinalizeAgent(c *gaconfig.AgentConfig) error {
	loadAgentDefaults(c)
	loadAgentEnv(c)
	return validateAgent(c)
}

func loadAgentDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults
}

func loadAgentEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvAgentProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvAgentBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvAgentModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvAgentToken, "token")
	setOption(EnvAgentDeployment, "deployment")
	setOption(EnvAgentAPIVersion, "api_version")
	setOption(EnvAgentAuthType, "auth_type")
}

func validateAgent(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
