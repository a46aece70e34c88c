package main

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fis/speedychess/buildflag"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	if os.Getenv("FLAGGEN_TEST_IS_FLAGGEN") != "" {
		main()
		os.Exit(0)
	}
	os.Setenv("FLAGGEN_TEST_IS_FLAGGEN", "1")
	os.Exit(m.Run())
}

func flaggen(t *testing.T, dir string, args ...string) (int, string) {
	t.Helper()
	exe, err := os.Executable()
	if err != nil {
		t.Fatal(err)
	}
	var stderr bytes.Buffer
	cmd := exec.Command(exe, args...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	err = cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), stderr.String()
	} else if err != nil {
		t.Fatal(err)
	}
	return 0, stderr.String()
}

func TestFlaggen(t *testing.T) {
	tests := []struct {
		args       []string
		wantCode   int
		wantServer bool
		wantStderr string
	}{
		{args: []string{"true"}, wantServer: true},
		{args: []string{"false"}, wantServer: false},
		{args: nil, wantCode: 1, wantStderr: "usage:"},
		{args: []string{"true", "false"}, wantCode: 1, wantStderr: "usage:"},
		{args: []string{"maybe"}, wantCode: 2, wantStderr: `invalid value "maybe"`},
		{args: []string{"1"}, wantCode: 2, wantStderr: "only true or false"},
		{args: []string{"-h"}, wantCode: 1, wantStderr: "usage:"},
		{args: []string{"-bogus", "true"}, wantCode: 1, wantStderr: "flag provided but not defined: -bogus"},
	}
	for _, test := range tests {
		dir := t.TempDir()
		code, stderr := flaggen(t, dir, test.args...)
		if code != test.wantCode {
			t.Errorf("flaggen %q: exit %d, want %d\n%s", test.args, code, test.wantCode, stderr)
			continue
		}
		if !strings.Contains(stderr, test.wantStderr) {
			t.Errorf("flaggen %q: stderr %q does not contain %q", test.args, stderr, test.wantStderr)
		}

		out := filepath.Join(dir, "compile.go")
		got, err := os.ReadFile(out)
		if test.wantCode != 0 {
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("flaggen %q: compile.go exists after failure (read: %v)", test.args, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("flaggen %q: %v", test.args, err)
		}
		want, err := buildflag.Generate("flags", test.wantServer)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(string(want), string(got)); diff != "" {
			t.Errorf("flaggen %q: compile.go mismatch (-want +got):\n%s", test.args, diff)
		}
	}
}

func TestFlaggenOptions(t *testing.T) {
	dir := t.TempDir()
	if code, stderr := flaggen(t, dir, "-out", "server.go", "-pkg", "build", "true"); code != 0 {
		t.Fatalf("flaggen: exit %d\n%s", code, stderr)
	}
	got, err := os.ReadFile(filepath.Join(dir, "server.go"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package build\n", "const SERVER = true\n"} {
		if !strings.Contains(string(got), want) {
			t.Errorf("server.go does not contain %q:\n%s", want, got)
		}
	}
}

func TestFlaggenBadPackage(t *testing.T) {
	dir := t.TempDir()
	if code, stderr := flaggen(t, dir, "-pkg", "no-dashes", "true"); code != 1 {
		t.Errorf("flaggen -pkg no-dashes: exit %d, want 1\n%s", code, stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "compile.go")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("compile.go exists after failure (stat: %v)", err)
	}
}
