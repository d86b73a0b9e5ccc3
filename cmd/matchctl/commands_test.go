package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courier/internal/modules/pricing"
)

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestFeeCommandQuotesMechanism(t *testing.T) {
	out := runRoot(t, "fee", "--mechanism", "motorcycle-rider", "--distance", "4")

	var q pricing.Quote
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, pricing.MechanismMotorcycle, q.Mechanism)
	assert.InDelta(t, 90, q.Total.Amount, 1e-9)
}

func TestFeeCommandUnknownMechanism(t *testing.T) {
	out := runRoot(t, "fee", "--mechanism", "drone", "--distance", "4")
	assert.Contains(t, out, `no fee structure for "drone"`)
}
