package main

import (
	"testing"
)

func TestParseCLIArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		mode cliMode
		msg  string
	}{
		{name: "run default", args: nil, mode: cliRun},
		{name: "version long", args: []string{"--version"}, mode: cliVersion},
		{name: "version short", args: []string{"-v"}, mode: cliVersion},
		{name: "version single-dash", args: []string{"-version"}, mode: cliVersion},
		{name: "help long", args: []string{"--help"}, mode: cliHelp},
		{name: "help short", args: []string{"-h"}, mode: cliHelp},
		{name: "help word", args: []string{"help"}, mode: cliHelp},
		{name: "invalid flag", args: []string{"--bogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus"},
		{name: "invalid flags joined", args: []string{"--bogus", "--pogus"}, mode: cliInvalid, msg: "unexpected argument: --bogus --pogus"},
		{name: "extra after version", args: []string{"--version", "extra"}, mode: cliVersion},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mode, msg := parseCLIArgs(tc.args)
			if mode != tc.mode {
				t.Fatalf("mode mismatch: got %v want %v", mode, tc.mode)
			}
			if tc.msg != "" && msg != tc.msg {
				t.Fatalf("msg mismatch: got %q want %q", msg, tc.msg)
			}
		})
	}
}

func TestResolveVersionInfo(t *testing.T) {
	v, c, d := resolveVersionInfo("dev", "none", "unknown", "v1.2.3", map[string]string{
		"vcs.revision": "abcdef0123456789",
		"vcs.time":     "2024-03-01T09:00:00Z",
	})
	if v != "v1.2.3" {
		t.Fatalf("version: got %q", v)
	}
	if c != "abcdef012345" {
		t.Fatalf("commit must truncate to 12 chars: got %q", c)
	}
	if d != "2024-03-01T09:00:00Z" {
		t.Fatalf("date: got %q", d)
	}

	// Values injected at link time win over build info.
	v, c, d = resolveVersionInfo("v2.0.0", "deadbeef", "2024-01-01", "v1.2.3", map[string]string{
		"vcs.revision": "abcdef0123456789",
	})
	if v != "v2.0.0" || c != "deadbeef" || d != "2024-01-01" {
		t.Fatalf("linker values must win: got %q %q %q", v, c, d)
	}
}
