package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krazyTry/ammcore-go/shared"
)

func run(t *testing.T, args ...string) ([]byte, error) {
	t.Helper()
	cmd := newRootCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.Bytes(), err
}

func TestTickCommand(t *testing.T) {
	t.Run("from tick", func(t *testing.T) {
		raw, err := run(t, "tick", "--tick", "0")
		require.NoError(t, err)
		var out tickOutput
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, int32(0), out.Tick)
		assert.Equal(t, "18446744073709551616", out.SqrtPrice)
		assert.Equal(t, "1", out.Price.String())
	})

	t.Run("from sqrt price", func(t *testing.T) {
		raw, err := run(t, "tick", "--sqrt-price", "18446744073709551616", "--tick", "77")
		require.NoError(t, err)
		var out tickOutput
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.Equal(t, int32(0), out.Tick)
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := run(t, "tick", "--tick", "500000")
		assert.ErrorIs(t, err, shared.ErrInvalidTick)
	})
}

func TestTranchesCommand(t *testing.T) {
	raw, err := run(t, "tranches", "--count", "5", "--spacing", "10", "--total0", "1000")
	require.NoError(t, err)

	var out []trancheOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	require.Len(t, out, 5)
	amounts := make([]uint64, len(out))
	for i, tr := range out {
		amounts[i] = tr.Amount0
		assert.Equal(t, int32(i*100), tr.TickLower)
	}
	assert.Equal(t, []uint64{142, 214, 288, 214, 142}, amounts)
	assert.Equal(t, uint16(30), out[2].FeeTierBps)

	_, err = run(t, "tranches", "--mode", "sideways")
	assert.ErrorIs(t, err, shared.ErrInvalidParameter)
}

func TestVerifyCommand(t *testing.T) {
	t.Run("balanced", func(t *testing.T) {
		raw, err := run(t, "verify", "--factors", "1,1", "--weights", "5000,5000")
		require.NoError(t, err)
		var out shared.ConservationCheckResult
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.True(t, out.IsValid)
		assert.Equal(t, int64(0), out.WeightedLogSum)
		assert.Equal(t, int64(1_000_000), out.MaxDeviation)
	})

	t.Run("growth without offset", func(t *testing.T) {
		raw, err := run(t, "verify", "--factors", "1.01", "--weights", "10000")
		require.NoError(t, err)
		var out shared.ConservationCheckResult
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.False(t, out.IsValid)
		assert.Greater(t, out.Deviation, uint64(1_000_000))
	})

	t.Run("supplied log sum", func(t *testing.T) {
		raw, err := run(t, "verify", "--factors", "1.01", "--weights", "10000", "--log-sum=-500")
		require.NoError(t, err)
		var out shared.ConservationCheckResult
		require.NoError(t, json.Unmarshal(raw, &out))
		assert.True(t, out.IsValid)
		assert.Equal(t, uint64(500), out.Deviation)
	})

	t.Run("bad weights", func(t *testing.T) {
		_, err := run(t, "verify", "--factors", "1", "--weights", "900")
		assert.ErrorIs(t, err, shared.ErrInvalidWeights)
	})
}

func TestSimulateCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "ammsim.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[simulator]\ntick_spacing = 10\n"), 0o600))

	snapshot := `{
  "address": "So11111111111111111111111111111111111111112",
  "tick": 0,
  "timestamp": 1000000,
  "positions": [
    {"owner": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", "tick_lower": -100, "tick_upper": 100, "liquidity": "10000"}
  ],
  "events": [
    {"type": "fees", "amount0": 1000, "amount1": 0}
  ]
}`
	snapPath := filepath.Join(dir, "pool.json")
	require.NoError(t, os.WriteFile(snapPath, []byte(snapshot), 0o600))

	raw, err := run(t, "--config", cfgPath, "simulate", "--snapshot", snapPath)
	require.NoError(t, err)

	var out simulateOutput
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, 1, out.Events)
	assert.Nil(t, out.TWAP)
	require.Len(t, out.Fees, 1)
	assert.Equal(t, "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA", out.Fees[0].Owner)
	assert.Equal(t, uint64(999), out.Fees[0].Amount0)
	assert.Equal(t, "10000", out.Summary.Liquidity)

	_, err = run(t, "simulate", "--snapshot", filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}
