package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildConfig_FlagsOverrideDefaults(t *testing.T) {
	require.NoError(t, runCmd.ParseFlags([]string{
		"--catalog", "cat.txt",
		"--requests", "req.txt",
		"--seed", "7",
		"--policy", "random",
	}))

	cfg, err := buildConfig(runCmd)
	require.NoError(t, err)

	assert.Equal(t, "cat.txt", cfg.Catalog)
	assert.Equal(t, "req.txt", cfg.Requests)
	assert.EqualValues(t, 7, cfg.Seed)
	assert.Equal(t, "random", cfg.Policy)
	// untouched knobs keep their defaults
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "none", cfg.TraceLevel)
}

func TestBuildConfig_ConfigFileFillsUnsetFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte("catalog: file-cat.txt\nrequests: file-req.txt\nseed: 99\n"), 0o644))

	// flags parsed by earlier tests must not leak into this one
	runCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })

	configPath = path
	t.Cleanup(func() { configPath = "" })

	cfg, err := buildConfig(runCmd)
	require.NoError(t, err)

	assert.EqualValues(t, 99, cfg.Seed)
	assert.Equal(t, "file-cat.txt", cfg.Catalog)
	assert.Equal(t, "file-req.txt", cfg.Requests)
}

func TestBuildConfig_FlagsSupplyPathsMissingFromConfigFile(t *testing.T) {
	// GIVEN a config file that sets only the seed
	path := filepath.Join(t.TempDir(), "station.yaml")
	require.NoError(t, os.WriteFile(path, []byte("seed: 7\n"), 0o644))

	// AND the mandatory paths given as flags
	runCmd.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
	require.NoError(t, runCmd.ParseFlags([]string{"--catalog", "a.txt", "--requests", "b.txt"}))

	configPath = path
	t.Cleanup(func() { configPath = "" })

	// WHEN the two sources are merged
	cfg, err := buildConfig(runCmd)

	// THEN the partial file is accepted: flags fill the gaps
	require.NoError(t, err)
	assert.EqualValues(t, 7, cfg.Seed)
	assert.Equal(t, "a.txt", cfg.Catalog)
	assert.Equal(t, "b.txt", cfg.Requests)
}
