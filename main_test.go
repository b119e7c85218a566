package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"version", []string{"version"}, 0, "postboard version " + cliVersion},
		{"version flag", []string{"--version"}, 0, "postboard version"},
		{"help", []string{"help"}, 0, ""},
		{"no args", nil, 1, ""},
		{"unknown", []string{"bogus"}, 1, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code := run(tt.args, &out)
			assert.Equal(t, tt.wantCode, code)
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func TestMainExitCode(t *testing.T) {
	var got int
	old := exit
	exit = func(code int) { got = code }
	defer func() { exit = old }()

	main()
	assert.NotEqual(t, 0, got, "running without a command should fail")
}
