package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestValidateRejectsBadSeat(t *testing.T) {
	cfg := Default()
	cfg.Rules.Seats = 3
	cfg.Rules.SeatPosition = 3

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "seat position 3 out of range")
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Rules.Decks = 0
	cfg.Rules.BlackjackPayout = 2
	cfg.Bet = 5000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decks")
	assert.Contains(t, err.Error(), "payout")
	assert.Contains(t, err.Error(), "bet 5000")
}

func TestLoadMergesFileFieldByField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
table {
  decks          = 2
  hit_soft_17    = false
  late_surrender = false
  seats          = 3
  seat_position  = 1
}

training {
  mode    = "deviations"
  advisor = "deviations"
}

seat "2" {
  strategy = "i18"
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Rules.Decks)
	assert.False(t, cfg.Rules.HitSoft17)
	assert.False(t, cfg.Rules.LateSurrender)
	assert.True(t, cfg.Rules.DoubleAfterSplit, "absent attributes keep their defaults")
	assert.Equal(t, 1.5, cfg.Rules.BlackjackPayout)
	assert.Equal(t, ModeDeviations, cfg.Mode)
	assert.Equal(t, "deviations", cfg.Advisor)
	assert.Equal(t, map[int]string{2: "i18"}, cfg.Strategies)
}

func TestLoadAppliesEnvironmentLast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte("table {\n  decks = 2\n}\n"), 0o644))

	t.Setenv("BLACKJACK_DECKS", "8")
	t.Setenv("BLACKJACK_BLACKJACK_PAYOUT", "1.2")
	t.Setenv("BLACKJACK_MODE", "pairs")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Rules.Decks)
	assert.Equal(t, 1.2, cfg.Rules.BlackjackPayout)
	assert.Equal(t, ModePairs, cfg.Mode)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.hcl")
	require.NoError(t, os.WriteFile(path, []byte("training {\n  mode = \"chaos\"\n}\n"), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.Error(t, err)
}

func TestCloneDoesNotShareStrategies(t *testing.T) {
	a := Default()
	a.Strategies[0] = "basic"
	b := a.Clone()
	b.Strategies[0] = "deviations"
	assert.Equal(t, "basic", a.Strategies[0])
}
