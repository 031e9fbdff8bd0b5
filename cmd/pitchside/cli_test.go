package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pitchside/internal/api"
	"pitchside/internal/services"
	"pitchside/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	for _, key := range []string{"OPENROUTER_API_KEY", "PITCHSIDE_NLP_API_KEY", "PITCHSIDE_API_TOKEN", "HF_TOKEN", "HUGGING_FACE_HUB_TOKEN"} {
		t.Setenv(key, "")
	}
	chdir(t, base)

	overrides := testsupport.WriteText(t, base, "profiles.yaml", "es:\n  players: [Lamine Yamal]\n")
	content := fmt.Sprintf("[paths]\nlog_dir = %q\nwork_dir = %q\ntranscript_cache_dir = %q\nprofile_overrides = %q\n\n[logging]\nlevel = \"debug\"\n",
		filepath.Join(base, "logs"),
		filepath.Join(base, "work"),
		filepath.Join(base, "cache"),
		overrides,
	)
	configPath := testsupport.WriteText(t, base, "config.toml", content)
	return &cliTestEnv{baseDir: base, configPath: configPath}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestAnalyzeFromFileJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	input := testsupport.WriteText(t, env.baseDir, "match.txt", testsupport.EnglishCommentary)

	out, _, err := runCLI(t, []string{"analyze", input, "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var resp api.AnalyzeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if len(resp.Rows) != 2 || resp.Rows[0].Tags != "goal, Messi" {
		t.Fatalf("unexpected rows %+v", resp.Rows)
	}
}

func TestAnalyzeFromStdinTable(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"analyze", "-", "--language", "Spanish"}, env.configPath, testsupport.SpanishCommentary)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "goal, Messi")
	requireContains(t, out, "1 timestamps, 1 highlights (1 goals), 0 general mentions [es]")
}

func TestAnalyzeWindowFlag(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"analyze", "--window", "0", "--json"}, env.configPath, testsupport.SpanishCommentary+"\n")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	var resp api.AnalyzeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if resp.Window != 0 {
		t.Fatalf("window = %d, want 0", resp.Window)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"analyze", "-"}, env.configPath, "")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "No timestamps found.")
}

func TestAnalyzeMissingFile(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"analyze", filepath.Join(env.baseDir, "nope.txt")}, env.configPath, "")
	if !errors.Is(err, services.ErrValidation) || exitCode(err) != 2 {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestHighlightsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"highlights", "--json"}, env.configPath, testsupport.TranscriptCommentary)
	if err != nil {
		t.Fatalf("highlights: %v", err)
	}
	var resp api.HighlightsResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(resp.Placements) != 2 || resp.Placements[0].TimeSeconds != 30 {
		t.Fatalf("unexpected placements %+v", resp.Placements)
	}

	out, _, err = runCLI(t, []string{"highlights", "--goals"}, env.configPath, testsupport.TranscriptCommentary)
	if err != nil {
		t.Fatalf("highlights table: %v", err)
	}
	requireContains(t, out, "Lionel Messi")
	requireContains(t, out, "$89.99")
}

func TestProfilesCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"profiles"}, env.configPath, "")
	if err != nil {
		t.Fatalf("profiles: %v", err)
	}
	requireContains(t, out, "en")
	requireContains(t, out, "es")

	out, _, err = runCLI(t, []string{"profiles", "spanish"}, env.configPath, "")
	if err != nil {
		t.Fatalf("profiles spanish: %v", err)
	}
	requireContains(t, out, "Lamine Yamal")

	if _, _, err := runCLI(t, []string{"profiles", "klingon"}, env.configPath, ""); exitCode(err) != 2 {
		t.Fatalf("expected validation exit code, got %v", err)
	}
}

func TestStatusCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"status", "--json"}, env.configPath, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var status api.StatusResponse
	if err := json.Unmarshal([]byte(out), &status); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if len(status.Dependencies) != 3 || !status.Dependencies[0].Available {
		t.Fatalf("unexpected dependencies %+v", status.Dependencies)
	}

	out, _, err = runCLI(t, []string{"status"}, env.configPath, "")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "Entity recognition")
	requireContains(t, out, "[OK]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestInvalidConfigExitCode(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := testsupport.WriteText(t, env.baseDir, "bad.toml", "[analysis]\nlanguage = \"klingon\"\n")
	_, _, err := runCLI(t, []string{"analyze", "-"}, bad, "1' kickoff")
	if exitCode(err) != 3 {
		t.Fatalf("expected configuration exit code, got %v", err)
	}
}

func TestTranscribeRequiresDependencies(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", env.baseDir)
	_, _, err := runCLI(t, []string{"transcribe", filepath.Join(env.baseDir, "match.mp4")}, env.configPath, "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected missing dependency error, got %v", err)
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{services.Wrap(services.ErrValidation, "input", "read", "", nil), 2},
		{services.Wrap(services.ErrConfiguration, "config", "load", "", errors.New("bad")), 3},
		{services.Wrap(services.ErrNotFound, "transcription", "parse", "", nil), 4},
		{services.Wrap(services.ErrTimeout, "analysis", "run", "", nil), 5},
		{errors.New("boom"), 1},
	}
	for _, tc := range cases {
		if got := exitCode(tc.err); got != tc.want {
			t.Fatalf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("restore cwd %s: %v", prev, err)
		}
	})
}
