package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/brenonevs/EyeTrackerDataAnalyzer-Heatmap/internal/testutil"
)

// flickerTargets is A,A,B followed by 97 A: one window [2, 52).
func flickerTargets() []string {
	return testutil.Seq(testutil.Run("A", 2), testutil.Run("B", 1), testutil.Run("A", 97))
}

func sessionXML(targets []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<session id="s-01">` + "\n")
	b.WriteString(`  <participant code="p07"/>` + "\n")
	b.WriteString("  <gazes>\n")
	for i, t := range targets {
		fmt.Fprintf(&b, "    <response i=\"%d\" time=\"%d\" gaze_target=\"%s\"/>\n", i, i*16, t)
	}
	b.WriteString("  </gazes>\n</session>\n")
	return b.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type cmdResult struct {
	stdout string
	stderr string
	err    error
}

func execute(cmd *cobra.Command, stdin string, args ...string) cmdResult {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cmdResult{stdout: out.String(), stderr: errOut.String(), err: err}
}
