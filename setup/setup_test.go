package setup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadMergesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"startingBalance: 500\nmaxClaimStake: 25\nresolutionWindow: 12h\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(500), cfg.StartingBalance)
	assert.Equal(t, int64(25), cfg.MaxClaimStake)
	assert.Equal(t, 12*time.Hour, cfg.ResolutionWindow)

	// Untouched fields keep their defaults.
	assert.Equal(t, int64(5), cfg.MinClaimStake)
	assert.Equal(t, 5, cfg.MinVotesToResolve)
	assert.InDelta(t, 0.5, cfg.WinBonusRate, 1e-9)
}

func TestLoadRejectsBadBands(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"claim band inverted", "minClaimStake: 50\nmaxClaimStake: 5\n"},
		{"vote band inverted", "minVoteStake: 20\nmaxVoteStake: 2\n"},
		{"starting balance below max stake", "startingBalance: 10\n"},
		{"positive loss delta", "reputationLossDelta: 0.05\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "setup.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tc.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("startingBalance: [nope"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
