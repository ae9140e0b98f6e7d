package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunMissingConfig(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "config.yaml"), "", true)
	require.ErrorContains(t, err, "configuration file not found")
}

func TestDefaultConfigPath(t *testing.T) {
	require.True(t, strings.HasSuffix(defaultConfigPath(), defaultConfigName))
}
