package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/leadcalc/internal/models"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEstimateTable(t *testing.T) {
	out, err := run(t, "estimate")
	require.NoError(t, err)
	assert.Contains(t, out, "16,283")
	assert.Contains(t, out, "₹2,160")
	assert.Contains(t, out, "Total budget required: ₹3,51,71,280")
}

func TestEstimateJSON(t *testing.T) {
	out, err := run(t, "estimate", "--channel", "meta", "-o", "json")
	require.NoError(t, err)

	var est models.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, "Meta", est.Inputs.MarketingChannels)
	assert.Equal(t, 12525, est.Metrics.Leads)
	assert.Len(t, est.Series, 6)
}

func TestEstimateMarkdown(t *testing.T) {
	out, err := run(t, "estimate", "--location", "Lucknow", "--units", "10", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Lead projection: Lucknow, 2 BHK")
}

func TestEstimateErrors(t *testing.T) {
	_, err := run(t, "estimate", "--location", "Atlantis")
	assert.ErrorContains(t, err, "location")

	_, err = run(t, "estimate", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestCustomCostTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_cpl: 1000\nlocations: {}\n"), 0o600))

	out, err := run(t, "--cost-table", path, "estimate", "-o", "json")
	require.NoError(t, err)
	var est models.Estimate
	require.NoError(t, json.Unmarshal([]byte(out), &est))
	assert.Equal(t, int64(1886), est.Metrics.CPL)
}

func TestOptions(t *testing.T) {
	out, err := run(t, "options")
	require.NoError(t, err)
	assert.Contains(t, out, "Mumbai South")
	assert.Contains(t, out, "G+M (Google Ads+Meta Ads)")
	assert.Contains(t, out, "6 Months")
}
