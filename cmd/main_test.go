package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Args(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "summary without start", args: []string{"summary"}, wantErr: "accepts between 1 and 2 arg(s)"},
		{name: "summary with three dates", args: []string{"summary", "2017-01-01", "2017-02-01", "2017-03-01"}, wantErr: "accepts between 1 and 2 arg(s)"},
		{name: "serve with extra arg", args: []string{"serve", "now"}, wantErr: "unknown command"},
		{name: "check-schema with extra arg", args: []string{"check-schema", "x"}, wantErr: "unknown command"},
		{name: "unknown subcommand", args: []string{"migrate"}, wantErr: "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newRootCmd()
			var out bytes.Buffer
			cmd.SetOut(&out)
			cmd.SetErr(&out)
			cmd.SetArgs(tt.args)

			err := cmd.Execute()
			if err == nil {
				t.Fatalf("Execute(%v) err = nil; want error", tt.args)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Execute(%v) err = %q; want it to contain %q", tt.args, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	for _, name := range []string{"serve", "check-schema", "summary"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil || sub == cmd {
			t.Errorf("subcommand %q not registered (err = %v)", name, err)
		}
	}
}
