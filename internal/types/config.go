package types

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

// GateConfig drives one startup pass of the compatibility gate.
// RequiredVersion is the minimum runtime major version the gated component
// needs. ChannelName is the update channel to deactivate when the runtime is
// too old. CatalogDir locates the channel catalog; an empty value makes every
// negotiation fail with ErrNoLocation.
// PromptDelayMS holds back the upgrade prompt so it does not race the host's
// startup theme transition. The URLs are shown verbatim in the prompt text.
// NotifyTopicARN, when set, receives a best-effort event per gate pass.
type GateConfig struct {
	RequiredVersion int    `json:"required_version" yaml:"required_version"`
	ChannelName     string `json:"channel" yaml:"channel"`
	CatalogDir      string `json:"catalog_dir" yaml:"catalog_dir"`
	PromptDelayMS   int    `json:"prompt_delay_ms" yaml:"prompt_delay_ms"`
	DownloadURL     string `json:"download_url" yaml:"download_url"`
	ReleaseNotesURL string `json:"release_notes_url" yaml:"release_notes_url"`
	ForumURL        string `json:"forum_url" yaml:"forum_url"`
	ReviewerCommand string `json:"reviewer_command" yaml:"reviewer_command"`
	NotifyTopicARN  string `json:"notify_topic_arn" yaml:"notify_topic_arn"`
}

const DefaultPromptDelayMS = 2500

func (c GateConfig) Validate() error {
	if c.RequiredVersion <= 0 {
		return Err(ErrInvalidGateConfig, nil, "required_version must be positive")
	}
	if c.ChannelName == "" {
		return Err(ErrInvalidGateConfig, nil, "channel is required")
	}
	if c.PromptDelayMS < 0 {
		return Err(ErrInvalidGateConfig, nil, "prompt_delay_ms must be non-negative")
	}
	return nil
}

// PromptDelay returns the configured delay as a duration.
func (c GateConfig) PromptDelay() time.Duration {
	return time.Duration(c.PromptDelayMS) * time.Millisecond
}

// LoadGateConfig reads a YAML gate config from disk, applies defaults and
// validates it.
func LoadGateConfig(path string) (GateConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return GateConfig{}, fmt.Errorf("read gate config: %w", err)
	}
	cfg := GateConfig{PromptDelayMS: DefaultPromptDelayMS}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return GateConfig{}, Err(ErrInvalidGateConfig, err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return GateConfig{}, err
	}
	return cfg, nil
}
