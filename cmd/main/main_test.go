package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UnknownOlympus/ont/internal/config"
)

func TestRun_MissingAtlasURI(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ATLAS_URI", "")
	t.Setenv("CONFIG_PATH", "")

	var stderr bytes.Buffer
	err := run(&stderr)

	require.ErrorIs(t, err, config.ErrMissingAtlasURI)
	assert.Equal(t, "No ATLAS_URI provided\n", stderr.String())
	assert.Equal(t, 1, exitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, exitCode(nil))
	assert.Equal(t, 1, exitCode(assert.AnError))
}
