package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "policy.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRunPolicy_ValidYAML(t *testing.T) {
	path := writeTempYAML(t, `
synth:
  epsilon: 0.01
  alpha_growth_factor: 1.5
feasibility:
  horizon_cap: 5000
`)
	policy, err := LoadRunPolicy(path)
	require.NoError(t, err)

	opts := policy.SynthOptions()
	assert.Equal(t, 0.01, opts.Epsilon)
	assert.Equal(t, 1.5, opts.AlphaGrowthFactor)
	assert.Equal(t, 5000.0, opts.Feasibility.HorizonCap)
}

func TestLoadRunPolicy_UnsetFieldsFallBackToDefaults(t *testing.T) {
	path := writeTempYAML(t, `synth:
  epsilon: 0.05
`)
	policy, err := LoadRunPolicy(path)
	require.NoError(t, err)

	opts := policy.SynthOptions()
	assert.Equal(t, 0.05, opts.Epsilon)
	assert.Equal(t, 1.2, opts.AlphaGrowthFactor) // default, untouched by the file
}

func TestLoadRunPolicy_InvalidEpsilon_ReturnsError(t *testing.T) {
	path := writeTempYAML(t, `synth:
  epsilon: -1
`)
	_, err := LoadRunPolicy(path)
	require.Error(t, err)
}

func TestLoadRunPolicy_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadRunPolicy(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestRunPolicy_NilReceiver_ReturnsPackageDefaults(t *testing.T) {
	var policy *RunPolicy
	opts := policy.SynthOptions()
	assert.Equal(t, 0.1, opts.Epsilon)
}
