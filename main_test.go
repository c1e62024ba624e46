package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/sshdeck/internal/tui"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "clean", err: nil, want: 0},
		{name: "interrupted", err: tui.ErrInterrupted, want: 130},
		{name: "wrapped interrupt", err: fmt.Errorf("browse: %w", tui.ErrInterrupted), want: 130},
		{name: "explicit exit", err: cli.Exit("", 3), want: 3},
		{name: "disconnected", err: errors.Join(tui.ErrDisconnected, errors.New("eof")), want: 1},
		{name: "setup failure", err: errors.New("load config: bad yaml"), want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestBuild(t *testing.T) {
	assert.NotEmpty(t, build())
}
