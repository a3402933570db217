package repo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGeneratesDefaultConfig(t *testing.T) {
	tempDir := t.TempDir()

	r, err := Load(tempDir)
	require.Nil(t, err)

	assert.Equal(t, uint64(60), r.Config.Governance.QuorumThresholdPercent)
	assert.Equal(t, uint64(60), r.Config.Governance.AcceptanceThresholdPercent)
	assert.Equal(t, 10, r.Config.Governance.MaxMilestones)

	assert.True(t, Exist(filepath.Join(tempDir, cfgFileName)))
}

func TestLoadRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	r, err := Load(tempDir)
	require.Nil(t, err)

	r.Config.Governance.VotingPhaseBlocks = 42
	r.Config.Log.Level = "debug"
	require.Nil(t, r.Flush())

	reloaded, err := Load(tempDir)
	require.Nil(t, err)
	assert.Equal(t, uint64(42), reloaded.Config.Governance.VotingPhaseBlocks)
	assert.Equal(t, "debug", reloaded.Config.Log.Level)
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	cfg.Governance.QuorumThresholdPercent = 101
	assert.NotNil(t, cfg.Validate())

	cfg = DefaultConfig(t.TempDir())
	cfg.Governance.VotingPhaseBlocks = 0
	assert.NotNil(t, cfg.Validate())

	cfg = DefaultConfig(t.TempDir())
	cfg.Governance.MaxMilestones = 0
	assert.NotNil(t, cfg.Validate())
}

func TestLoadBrokenConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	require.Nil(t, os.WriteFile(filepath.Join(tempDir, cfgFileName), []byte("not toml {{"), 0755))

	_, err := Load(tempDir)
	assert.NotNil(t, err)
}
