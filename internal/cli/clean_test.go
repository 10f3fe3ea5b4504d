package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gaze"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/gazexml"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/report"
	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/testutil"
)

func fixedCleanCommand(format, runID string) *cobra.Command {
	return newCleanCommand(&CleanOptions{
		RootOptions: &RootOptions{Format: format},
		RunIDs:      testutil.NewFixedRunIDGenerator(runID),
	})
}

func TestClean_WritesCleanedSession(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	out := filepath.Join(dir, "cleaned.xml")

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "", in, "-o", out)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Cleaned "+in+" -> "+out)
	assert.Contains(t, res.stdout, "Records: 100 in, 50 out (50 removed)")
	assert.Contains(t, res.stderr, "gaze log loaded")

	log, _, err := gazexml.Load(out, gazexml.DefaultLayout(), gaze.DefaultField)
	require.NoError(t, err)
	require.Len(t, log, 50)
	first, _ := log[2].Get("i")
	assert.Equal(t, "52", first)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<participant code="p07"/>`)
}

func TestClean_DefaultOutputPath(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	chdir(t, dir)

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "", "session.xml")
	require.NoError(t, res.err)

	_, err := os.Stat(filepath.Join(dir, gazexml.DefaultOutputPath))
	assert.NoError(t, err)
}

func TestClean_PromptSelectsInput(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	out := filepath.Join(dir, "cleaned.xml")

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), in+"\n", "-o", out)
	require.NoError(t, res.err)

	assert.Contains(t, res.stderr, "XML file: ")
	_, err := os.Stat(out)
	assert.NoError(t, err)
}

func TestClean_CancelledSelectionWritesNothing(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "\n")
	require.NoError(t, res.err)
	assert.Equal(t, ExitSuccess, GetExitCode(res.err))
	assert.Contains(t, res.stdout, "No input selected.")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClean_CancelledSelectionJSON(t *testing.T) {
	chdir(t, t.TempDir())

	res := execute(NewCleanCommand(&RootOptions{Format: "json"}), "")
	require.NoError(t, res.err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, map[string]any{"cancelled": true}, resp.Data)
}

func TestClean_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	out := filepath.Join(dir, "cleaned.xml")

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "", in, "-o", out, "--dry-run")
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "dry run, nothing written")
	assert.Contains(t, res.stdout, "(50 removed)")
	_, err := os.Stat(out)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestClean_JSONSummary(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	out := filepath.Join(dir, "cleaned.xml")
	res := execute(fixedCleanCommand("json", "run-test"), "", in, "-o", out)
	require.NoError(t, res.err)

	var resp struct {
		Status string         `json:"status"`
		Data   report.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-test", resp.Data.RunID)
	assert.Equal(t, in, resp.Data.Input)
	assert.Equal(t, out, resp.Data.Output)
	assert.Equal(t, 100, resp.Data.RecordsIn)
	assert.Equal(t, 50, resp.Data.RecordsOut)
	assert.Equal(t, []gaze.Flicker{{Start: 2, End: 52, Target: "B", Baseline: "A"}}, resp.Data.Flickers)
	assert.False(t, resp.Data.DryRun)
}

func TestClean_DefaultRunIDIsUUID(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))

	res := execute(NewCleanCommand(&RootOptions{Format: "json"}), "", in, "-o", filepath.Join(dir, "out.xml"))
	require.NoError(t, res.err)

	var resp struct {
		Data report.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Len(t, resp.Data.RunID, 36)
}

func TestClean_SecondPassRemovesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeFile(t, dir, "session.xml", sessionXML(flickerTargets()))
	once := filepath.Join(dir, "once.xml")
	twice := filepath.Join(dir, "twice.xml")

	first := execute(NewCleanCommand(&RootOptions{Format: "json"}), "", in, "-o", once)
	require.NoError(t, first.err)
	second := execute(NewCleanCommand(&RootOptions{Format: "json"}), "", once, "-o", twice)
	require.NoError(t, second.err)

	var a, b struct {
		Data report.Summary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(first.stdout), &a))
	require.NoError(t, json.Unmarshal([]byte(second.stdout), &b))

	assert.Equal(t, 0, b.Data.Removed)
	assert.Equal(t, a.Data.Digest, b.Data.Digest)
}

func TestClean_WindowAndFieldFlags(t *testing.T) {
	dir := t.TempDir()
	content := `<session><gazes>
<response target="A"/><response target="A"/><response target="B"/>
<response target="A"/><response target="A"/><response target="A"/>
</gazes></session>`
	in := writeFile(t, dir, "session.xml", content)
	out := filepath.Join(dir, "cleaned.xml")

	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "", in, "-o", out, "--window", "3", "--field", "target")
	require.NoError(t, res.err)

	log, _, err := gazexml.Load(out, gazexml.DefaultLayout(), "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", "A"}, log.Targets("target"))
}

func TestClean_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `<log><samples><s target="A"/><s target="B"/><s target="A"/><s target="A"/></samples></log>`
	in := writeFile(t, dir, "session.xml", content)
	out := filepath.Join(dir, "from-config.xml")
	cfgPath := writeFile(t, dir, "gazeclean.yaml", `
filter:
  window: 1
  target_field: target
xml:
  record_element: s
  container_element: samples
output:
  path: `+out+`
`)

	res := execute(NewCleanCommand(&RootOptions{Format: "text", ConfigPath: cfgPath}), "", in)
	require.NoError(t, res.err)

	layout := gazexml.Layout{Record: "s", Container: "samples", Indent: 2}
	log, _, err := gazexml.Load(out, layout, "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A", "A"}, log.Targets("target"))
}

func TestClean_Errors(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "broken.xml", `<session><gazes></session>`)
	noTarget := writeFile(t, dir, "notarget.xml", `<session><gazes><response time="0"/></gazes></session>`)
	good := writeFile(t, dir, "good.xml", sessionXML(flickerTargets()))

	tests := []struct {
		name    string
		opts    *RootOptions
		args    []string
		wantErr error
	}{
		{"malformed input", &RootOptions{Format: "text"}, []string{malformed, "-o", filepath.Join(dir, "o1.xml")}, gazexml.ErrMalformed},
		{"missing target", &RootOptions{Format: "text"}, []string{noTarget, "-o", filepath.Join(dir, "o2.xml")}, gazexml.ErrMissingField},
		{"missing input", &RootOptions{Format: "text"}, []string{filepath.Join(dir, "none.xml"), "-o", filepath.Join(dir, "o3.xml")}, os.ErrNotExist},
		{"missing config", &RootOptions{Format: "text", ConfigPath: filepath.Join(dir, "none.yaml")}, []string{good, "-o", filepath.Join(dir, "o4.xml")}, os.ErrNotExist},
		{"bad window", &RootOptions{Format: "text"}, []string{good, "--window", "0", "-o", filepath.Join(dir, "o5.xml")}, nil},
		{"unwritable output", &RootOptions{Format: "text"}, []string{good, "-o", filepath.Join(dir, "no-dir", "o6.xml")}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := execute(NewCleanCommand(tt.opts), "", tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, ExitCommandError, GetExitCode(res.err))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(res.err, tt.wantErr), "got %v", res.err)
			}
		})
	}

	for _, name := range []string{"o1.xml", "o2.xml", "o3.xml", "o4.xml", "o5.xml"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, errors.Is(err, os.ErrNotExist), name)
	}
}

func TestClean_JSONError(t *testing.T) {
	dir := t.TempDir()
	malformed := writeFile(t, dir, "broken.xml", `<session><gazes></session>`)

	res := execute(NewCleanCommand(&RootOptions{Format: "json"}), "", malformed, "-o", filepath.Join(dir, "o.xml"))
	require.Error(t, res.err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeInput, resp.Error.Code)
	assert.Equal(t, "failed to load gaze log", resp.Error.Message)
}

func TestClean_TooManyArgs(t *testing.T) {
	res := execute(NewCleanCommand(&RootOptions{Format: "text"}), "", "a.xml", "b.xml")
	require.Error(t, res.err)
}
