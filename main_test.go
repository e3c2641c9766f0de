package main

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termdeposit/internal"
	"termdeposit/internal/config"
	"termdeposit/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"no error", nil, 0},
		{"missing artifacts", errors.ArtifactLoadFailed("model", stderrors.New("no such file")), 2},
		{"bad config", errors.Wrap(errors.ConfigInvalid("PORT is required"), "configuration validation failed"), 2},
		{"listener failure", errors.Wrap(stderrors.New("address already in use"), "server failed"), 1},
		{"plain error", stderrors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRun_MissingArtifactsIsStartupFailure(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{"ARTIFACT_DIR": t.TempDir(), "GIN_MODE": "test", "PORT": "0"})
	require.NoError(t, err)

	err = run(cfg, internal.NewLogger(internal.LogLevelError))
	assert.Error(t, err)
	assert.True(t, errors.IsFatal(err))
	assert.Equal(t, 2, exitCode(err))
}
