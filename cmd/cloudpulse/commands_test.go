package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pankaj-dahiya-devops/cloudpulse/internal/export"
)

func TestRootCommandWiring(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{"serve": false, "audit": false, "version": false}
	for _, cmd := range root.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestAuditFlagDefaults(t *testing.T) {
	cmd := newAuditCmd()

	if got := cmd.Flags().Lookup("format").DefValue; got != export.FormatTable {
		t.Errorf("format default = %q; want %q", got, export.FormatTable)
	}
	if got := cmd.Flags().Lookup("output").DefValue; got != "" {
		t.Errorf("output default = %q; want empty", got)
	}
	if got := cmd.Flags().Lookup("region").DefValue; got != "" {
		t.Errorf("region default = %q; want empty", got)
	}
}

func TestVersionCommandOutput(t *testing.T) {
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetArgs([]string{"version"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "cloudpulse ") {
		t.Errorf("unexpected version output: %q", out)
	}
}
