package commands

import (
	"encoding/json"
	"testing"

	"github.com/cyclic-lang/cyclic/internal/cli/testutil"
	"github.com/cyclic-lang/cyclic/pkg/interp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeProgram(t *testing.T, code string) ([]interp.Result, interp.SystemState) {
	t.Helper()
	in := interp.New()
	results := in.Execute(code)
	return results, in.Snapshot()
}

func TestRenderResultsText(t *testing.T) {
	results, _ := executeProgram(t, "plant = 100\n∂decay(plant, 0.1)")

	tr := testutil.NewTestRendererText()
	require.NoError(t, renderResults(tr.Renderer, results))

	testutil.AssertNoANSI(t, tr.Output())
	assert.Contains(t, tr.Output(), "creation_0")
	assert.Contains(t, tr.Output(), "created plant with 100.00 energy")
	assert.Contains(t, tr.Output(), "decay_1")
}

func TestRenderResultsTextEmpty(t *testing.T) {
	tr := testutil.NewTestRendererText()
	require.NoError(t, renderResults(tr.Renderer, nil))

	assert.Contains(t, tr.Output(), "(no results)")
}

func TestRenderResultsMarkdown(t *testing.T) {
	results, _ := executeProgram(t, "∇F(a↔b)|∂E/∂t=0")

	tr := testutil.NewTestRendererMarkdown()
	require.NoError(t, renderResults(tr.Renderer, results))

	assert.Contains(t, tr.Output(), "| Key | Type | Summary |")
	assert.Contains(t, tr.Output(), "| interaction_0 | bidirectional |")
	assert.Contains(t, tr.Output(), "a and b")
}

func TestRenderResultsJSON(t *testing.T) {
	results, _ := executeProgram(t, "plant = 100\nnot a real op")

	tr := testutil.NewTestRendererJSON()
	require.NoError(t, renderResults(tr.Renderer, results))

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "creation_0", entries[0]["key"])
	assert.Equal(t, "field_created", entries[0]["type"])
	assert.Equal(t, "unknown_1", entries[1]["key"])
	assert.Equal(t, "not a real op", entries[1]["expression"])
}

func TestRenderResultsErrorSummary(t *testing.T) {
	results, _ := executeProgram(t, "∇F(a↔b↔c)|x")

	tr := testutil.NewTestRendererText()
	require.NoError(t, renderResults(tr.Renderer, results))

	assert.Contains(t, tr.Output(), "error_0")
	assert.Contains(t, tr.Output(), "exactly 2 fields")
}

func TestRenderStateText(t *testing.T) {
	_, state := executeProgram(t, "plant = 100")

	tr := testutil.NewTestRendererText()
	require.NoError(t, renderState(tr.Renderer, state))

	assert.Contains(t, tr.Output(), "System State")
	assert.Contains(t, tr.Output(), "plant")
	assert.Contains(t, tr.Output(), "100.00")
	assert.Contains(t, tr.Output(), "Budget remaining")
}

func TestRenderStateTextEmpty(t *testing.T) {
	_, state := executeProgram(t, "")

	tr := testutil.NewTestRendererText()
	require.NoError(t, renderState(tr.Renderer, state))

	assert.Contains(t, tr.Output(), "(no fields)")
}

func TestRenderStateJSON(t *testing.T) {
	_, state := executeProgram(t, "plant = 100")

	tr := testutil.NewTestRendererJSON()
	require.NoError(t, renderState(tr.Renderer, state))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(tr.Out.Bytes(), &decoded))
	assert.Equal(t, 100.0, decoded["total_system_energy"])
	fields := decoded["fields"].([]any)
	require.Len(t, fields, 1)
	assert.Equal(t, "plant", fields[0].(map[string]any)["name"])
}

func TestSummarizePhaseNoOp(t *testing.T) {
	results, _ := executeProgram(t, "weak = 5\n∂phase(weak, gas)")

	require.Len(t, results, 2)
	assert.Contains(t, summarizeResult(results[1]), "insufficient energy")
}
