// Package setup loads the token economics configuration. Values ship with
// compiled-in defaults; a setup.yaml file overrides them.
package setup

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Economics holds every tunable of the incentive system.
type Economics struct {
	// StartingBalance is granted to an actor on first sight.
	StartingBalance int64 `yaml:"startingBalance"`

	// Claim submission stake band (inclusive).
	MinClaimStake int64 `yaml:"minClaimStake"`
	MaxClaimStake int64 `yaml:"maxClaimStake"`

	// Vote stake band (inclusive).
	MinVoteStake int64 `yaml:"minVoteStake"`
	MaxVoteStake int64 `yaml:"maxVoteStake"`

	// WinBonusRate is the externally funded reward multiplier applied to a
	// winner's own stake at settlement.
	WinBonusRate float64 `yaml:"winBonusRate"`

	// Reputation deltas applied at settlement, clamped to [0,1].
	ReputationWinDelta  float64 `yaml:"reputationWinDelta"`
	ReputationLossDelta float64 `yaml:"reputationLossDelta"`

	// Resolution eligibility: a claim with at least MinVotesToResolve votes
	// resolves after ResolutionWindow, or earlier on strong consensus.
	MinVotesToResolve int           `yaml:"minVotesToResolve"`
	ResolutionWindow  time.Duration `yaml:"resolutionWindow"`

	// MinContentLength rejects trivially short claims.
	MinContentLength int `yaml:"minContentLength"`
}

// Defaults returns the compiled-in economics.
func Defaults() *Economics {
	return &Economics{
		StartingBalance:     1000,
		MinClaimStake:       5,
		MaxClaimStake:       50,
		MinVoteStake:        2,
		MaxVoteStake:        20,
		WinBonusRate:        0.5,
		ReputationWinDelta:  0.02,
		ReputationLossDelta: -0.05,
		MinVotesToResolve:   5,
		ResolutionWindow:    24 * time.Hour,
		MinContentLength:    10,
	}
}

// Load reads economics from a YAML file, applying defaults for any field
// left at zero. A missing file just yields the defaults.
func Load(path string) (*Economics, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read setup config: %w", err)
	}

	var file Economics
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse setup config: %w", err)
	}
	merge(cfg, &file)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func merge(dst, src *Economics) {
	if src.StartingBalance != 0 {
		dst.StartingBalance = src.StartingBalance
	}
	if src.MinClaimStake != 0 {
		dst.MinClaimStake = src.MinClaimStake
	}
	if src.MaxClaimStake != 0 {
		dst.MaxClaimStake = src.MaxClaimStake
	}
	if src.MinVoteStake != 0 {
		dst.MinVoteStake = src.MinVoteStake
	}
	if src.MaxVoteStake != 0 {
		dst.MaxVoteStake = src.MaxVoteStake
	}
	if src.WinBonusRate != 0 {
		dst.WinBonusRate = src.WinBonusRate
	}
	if src.ReputationWinDelta != 0 {
		dst.ReputationWinDelta = src.ReputationWinDelta
	}
	if src.ReputationLossDelta != 0 {
		dst.ReputationLossDelta = src.ReputationLossDelta
	}
	if src.MinVotesToResolve != 0 {
		dst.MinVotesToResolve = src.MinVotesToResolve
	}
	if src.ResolutionWindow != 0 {
		dst.ResolutionWindow = src.ResolutionWindow
	}
	if src.MinContentLength != 0 {
		dst.MinContentLength = src.MinContentLength
	}
}

func (e *Economics) validate() error {
	if e.MinClaimStake <= 0 || e.MaxClaimStake < e.MinClaimStake {
		return fmt.Errorf("invalid claim stake band [%d, %d]", e.MinClaimStake, e.MaxClaimStake)
	}
	if e.MinVoteStake <= 0 || e.MaxVoteStake < e.MinVoteStake {
		return fmt.Errorf("invalid vote stake band [%d, %d]", e.MinVoteStake, e.MaxVoteStake)
	}
	if e.StartingBalance < e.MaxClaimStake {
		return fmt.Errorf("starting balance %d below max claim stake %d", e.StartingBalance, e.MaxClaimStake)
	}
	if e.ReputationLossDelta > 0 {
		return fmt.Errorf("reputation loss delta must be negative, got %f", e.ReputationLossDelta)
	}
	return nil
}
