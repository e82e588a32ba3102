package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestDemoCommand(t *testing.T) {
	tests := map[string]struct {
		args          []string
		wantCompanies int
		wantVCs       int
	}{
		"defaults":     {args: []string{"demo"}, wantCompanies: 10, wantVCs: 10},
		"capped":       {args: []string{"demo", "--companies", "100", "--vcs", "100"}, wantCompanies: 25, wantVCs: 50},
		"vcs disabled": {args: []string{"demo", "--vcs", "0", "--companies", "3"}, wantCompanies: 3, wantVCs: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newRootCmd()
			cmd.SetOut(&out)
			cmd.SetArgs(tt.args)
			if err := cmd.Execute(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got demoOutput
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if len(got.Companies) != tt.wantCompanies || len(got.VCs) != tt.wantVCs {
				t.Fatalf("expected %d companies and %d vcs, got %d and %d", tt.wantCompanies, tt.wantVCs, len(got.Companies), len(got.VCs))
			}
		})
	}
}

func TestDemoCommandIsDeterministic(t *testing.T) {
	run := func() string {
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"demo", "--seed", "7", "--companies", "2", "--vcs", "2"})
		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return out.String()
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("expected identical output for the same seed")
	}
}

func TestMigratePrint(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--print"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "CREATE TABLE") {
		t.Fatalf("expected schema DDL, got %q", out.String())
	}
}
