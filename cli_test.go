package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget-engine/internal/config"
	"budget-engine/internal/model"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// execute runs the root command with a config path that does not exist, so
// only built-in defaults apply.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"PORT", "LOG_LEVEL", "POLICY_REGISTRY_URL", "POLICY_THRESHOLDS_FILE"} {
		t.Setenv(key, "")
	}

	calcInput, calcEdits, calcPeriods, calcFirstYear = "", "", 0, 0
	calcFormat, calcStyle = formatText, "dark"
	for _, name := range []string{"input", "edits", "periods", "first-year", "format", "style"} {
		calcCmd.Flags().Lookup(name).Changed = false
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestLoadSnapshotDefaults(t *testing.T) {
	s, err := loadSnapshot("")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSnapshot(), s)
}

func TestLoadSnapshotYAMLOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "snap.yaml", "finance:\n  in_year_deficit: 12.5\n")

	s, err := loadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 12.5, s.Finance.InYearDeficit)
	assert.Equal(t, model.DefaultSnapshot().Finance.ReserveSupport, s.Finance.ReserveSupport)
}

func TestLoadSnapshotJSON(t *testing.T) {
	path := writeFile(t, "snap.json", `{"uasc":{"pressure":3.1}}`)

	s, err := loadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, 3.1, s.Uasc.Pressure)
}

func TestLoadSnapshotErrors(t *testing.T) {
	_, err := loadSnapshot(writeFile(t, "snap.toml", ""))
	assert.ErrorContains(t, err, "unsupported snapshot format")

	_, err = loadSnapshot(writeFile(t, "snap.json", "{"))
	assert.ErrorContains(t, err, "failed to parse snapshot")

	_, err = loadSnapshot(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read snapshot")
}

func TestLoadEdits(t *testing.T) {
	edits, err := loadEdits("")
	require.NoError(t, err)
	assert.Nil(t, edits)

	path := writeFile(t, "edits.json", `[{"edit_id":"1","edit_name":"update_levers","properties":{"reduce_agency":20}}]`)
	edits, err = loadEdits(path)
	require.NoError(t, err)
	require.Len(t, edits, 1)
	assert.Equal(t, "update_levers", edits[0].EditName)
}

func TestCalcJSON(t *testing.T) {
	out, err := execute(t, "calc", "--format", "json", "--periods", "2")
	require.NoError(t, err)

	var resp model.CalculationResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, model.OutcomeSuccess, resp.CalculationMetadata.CalculationOutcome)
	assert.Len(t, resp.CalculationResult.Derivation.Projection, 2)
}

func TestCalcText(t *testing.T) {
	out, err := execute(t, "calc")
	require.NoError(t, err)
	assert.Contains(t, out, "RAG status")
	assert.Contains(t, out, "SECTION_114_RISK")
}

func TestCalcMarkdown(t *testing.T) {
	out, err := execute(t, "calc", "--format", "markdown", "--style", "notty")
	require.NoError(t, err)
	assert.Contains(t, out, "Recovery scenarios")
}

func TestCalcFailedEditReturnsError(t *testing.T) {
	path := writeFile(t, "edits.json", `[{"edit_id":"1","edit_name":"no_such_edit","properties":{}}]`)

	out, err := execute(t, "calc", "--edits", path)
	require.Error(t, err)
	assert.Contains(t, out, "UNKNOWN_EDIT")
}

func TestCalcRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "calc", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestConfigInitWritesDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "LOG_LEVEL", "POLICY_REGISTRY_URL", "POLICY_THRESHOLDS_FILE"} {
		t.Setenv(key, "")
	}
	path := filepath.Join(t.TempDir(), "conf", "config.yaml")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), path)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	rootCmd.SetArgs([]string{"--config", path, "config", "init"})
	assert.ErrorContains(t, rootCmd.Execute(), "already exists")

	rootCmd.SetArgs([]string{"--config", path, "config", "init", "--force"})
	require.NoError(t, rootCmd.Execute())
	configForce = false
}
