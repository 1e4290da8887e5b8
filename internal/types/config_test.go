package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateConfigValidate(t *testing.T) {
	valid := GateConfig{RequiredVersion: 21, ChannelName: "Neuroanatomy"}
	assert.NoError(t, valid.Validate())

	missingVersion := valid
	missingVersion.RequiredVersion = 0
	assert.ErrorIs(t, missingVersion.Validate(), ErrInvalidGateConfig)

	missingChannel := valid
	missingChannel.ChannelName = ""
	assert.ErrorIs(t, missingChannel.Validate(), ErrInvalidGateConfig)

	negativeDelay := valid
	negativeDelay.PromptDelayMS = -1
	assert.ErrorIs(t, negativeDelay.Validate(), ErrInvalidGateConfig)
}

func TestLoadGateConfigAppliesDelayDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vergate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"required_version: 21\nchannel: Neuroanatomy\ncatalog_dir: /opt/app\n"), 0o644))

	cfg, err := LoadGateConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultPromptDelayMS, cfg.PromptDelayMS)
	assert.Equal(t, "Neuroanatomy", cfg.ChannelName)
}

func TestLoadGateConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vergate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("channel: Neuroanatomy\n"), 0o644))

	_, err := LoadGateConfig(path)
	assert.ErrorIs(t, err, ErrInvalidGateConfig)
}

func TestOutcomeChanged(t *testing.T) {
	assert.True(t, Applied().Changed())
	assert.True(t, AppliedNotPersisted().Changed())
	assert.False(t, NotFound().Changed())
	assert.False(t, Failed(ErrStructural).Changed())
	assert.False(t, Outcome{}.Changed())
}
