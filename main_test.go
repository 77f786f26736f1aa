package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

type goldenFileTestCase struct {
	expect          string
	givenArgs       string
	givenEnvs       map[string]string
	wantOutExactly  string
	wantOutContains string
	wantStatusCode  int
}

func runGolden(t *testing.T, tc goldenFileTestCase) (string, int) {
	t.Helper()
	t.Setenv("SOLVR_CONFIG_HOME", t.TempDir())
	t.Setenv("SOLVR_MODEL", "")
	t.Setenv("SOLVR_MAX_STEPS", "")
	t.Setenv("NO_COLOR", "true")
	for k, v := range tc.givenEnvs {
		t.Setenv(k, v)
	}
	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run(strings.Split(tc.givenArgs, " "))
	})
	return gotStdout, gotStatusCode
}

// Test_goldenFile_calibration of the golden file tests to ensure they work
func Test_goldenFile_calibration(t *testing.T) {
	tcs := []goldenFileTestCase{
		{
			expect: "base-test",
			// The `test` model answers every question with the question
			// itself as the final answer
			givenArgs:      "-r -m test test",
			wantOutExactly: "test\n",
		},
		{
			expect:         "multiple words are one question",
			givenArgs:      "-r -m test What is 15% of 840?",
			wantOutExactly: "What is 15% of 840?\n",
		},
		{
			expect:         "model from env",
			givenArgs:      "-r another test",
			givenEnvs:      map[string]string{"SOLVR_MODEL": "test"},
			wantOutExactly: "another test\n",
		},
		{
			expect:         "expr evaluator",
			givenArgs:      "-r -m test --evaluator expr 2+2",
			wantOutExactly: "2+2\n",
		},
		{
			expect:         "trace without steps prints only the answer",
			givenArgs:      "-r -m test --trace --max-steps 2 2+2",
			wantOutExactly: "2+2\n",
		},
		{
			expect:          "pretty output labels the role",
			givenArgs:       "-m test --line 2+2",
			wantOutContains: "assistant:",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.expect, func(t *testing.T) {
			gotStdout, gotStatusCode := runGolden(t, tc)
			testboil.FailTestIfDiff(t, gotStatusCode, tc.wantStatusCode)
			if tc.wantOutContains != "" {
				testboil.AssertStringContains(t, gotStdout, tc.wantOutContains)
			}
			if tc.wantOutExactly != "" {
				testboil.FailTestIfDiff(t, gotStdout, tc.wantOutExactly)
			}
		})
	}
}

func Test_goldenFile_startup_failures(t *testing.T) {
	tcs := []goldenFileTestCase{
		{
			expect:         "missing groq key",
			givenArgs:      "-r -m llama-3.3-70b-versatile 2+2",
			givenEnvs:      map[string]string{"GROQ_API_KEY": ""},
			wantStatusCode: 1,
		},
		{
			expect:         "missing openai key",
			givenArgs:      "-r -m gpt-4.1-mini 2+2",
			givenEnvs:      map[string]string{"OPENAI_API_KEY": ""},
			wantStatusCode: 1,
		},
		{
			expect:         "unknown evaluator",
			givenArgs:      "-r -m test --evaluator python 2+2",
			wantStatusCode: 1,
		},
		{
			expect:         "bad max steps env",
			givenArgs:      "-r -m test 2+2",
			givenEnvs:      map[string]string{"SOLVR_MAX_STEPS": "lots"},
			wantStatusCode: 1,
		},
		{
			expect:         "unknown flag",
			givenArgs:      "-r -m test --nope 2+2",
			wantStatusCode: 1,
		},
	}
	for _, tc := range tcs {
		t.Run(tc.expect, func(t *testing.T) {
			_, gotStatusCode := runGolden(t, tc)
			testboil.FailTestIfDiff(t, gotStatusCode, tc.wantStatusCode)
		})
	}
}

func Test_goldenFile_config_is_created(t *testing.T) {
	confDir := t.TempDir()
	t.Setenv("SOLVR_CONFIG_HOME", confDir)
	t.Setenv("SOLVR_MODEL", "")
	t.Setenv("SOLVR_MAX_STEPS", "")
	var gotStatusCode int
	testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"-r", "-m", "test", "2+2"})
	})
	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	b, err := os.ReadFile(filepath.Join(confDir, "solvrConfig.json"))
	if err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	testboil.AssertStringContains(t, string(b), `"model": "llama-3.3-70b-versatile"`)
}

func Test_goldenFile_VERSION_prints_version_and_exits_0(t *testing.T) {
	t.Setenv("SOLVR_CONFIG_HOME", t.TempDir())
	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run(strings.Split("version", " "))
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	// The exact version depends on build info / VCS state; assert stable prefix.
	testboil.AssertStringContains(t, gotStdout, "version: ")
}
