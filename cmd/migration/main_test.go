package main

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestParseSteps(t *testing.T) {
	tests := []struct {
		args    []string
		want    int
		wantErr bool
	}{
		{args: nil, want: 1},
		{args: []string{" 3 "}, want: 3},
		{args: []string{"0"}, wantErr: true},
		{args: []string{"x"}, wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseSteps(tt.args)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("parseSteps(%v) expected error", tt.args)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("parseSteps(%v)=%d,%v want=%d", tt.args, got, err, tt.want)
		}
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	if _, err := parseVersion("-1"); err == nil {
		t.Fatalf("expected negative version to fail")
	}
	if v, err := parseVersion("2"); err != nil || v != 2 {
		t.Fatalf("unexpected version: %d, %v", v, err)
	}
	if _, err := parseTarget("abc"); err == nil {
		t.Fatalf("expected invalid target to fail")
	}
}

func TestResolveMigrationsDir_Override(t *testing.T) {
	dir := t.TempDir()

	got, err := resolveMigrationsDir(dir)
	if err != nil {
		t.Fatalf("resolve dir: %v", err)
	}
	if got != dir {
		t.Fatalf("unexpected dir: %q want %q", got, dir)
	}

	missing := filepath.Join(dir, "missing")
	t.Chdir(dir)
	if _, err := resolveMigrationsDir(missing); err == nil {
		t.Fatalf("expected error when no directory exists")
	}
}

func TestWithPreparedBinaryFlag(t *testing.T) {
	const raw = "postgres://u:p@localhost:5432/fantasy_market?sslmode=disable"

	if got := withPreparedBinaryFlag(raw, false); got != raw {
		t.Fatalf("expected unchanged url, got %q", got)
	}
	if got := withPreparedBinaryFlag(raw, true); !strings.Contains(got, "disable_prepared_binary_result=yes") {
		t.Fatalf("expected flag in url, got %q", got)
	}
}
