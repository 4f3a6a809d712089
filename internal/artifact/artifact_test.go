package artifact

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const peggyABI = `[
  {"inputs":[{"internalType":"address","name":"_valset","type":"address"}],"stateMutability":"nonpayable","type":"constructor"},
  {"anonymous":false,"inputs":[{"indexed":false,"internalType":"bytes32","name":"_id","type":"bytes32"},{"indexed":false,"internalType":"uint256","name":"_value","type":"uint256"}],"name":"LogLock","type":"event"},
  {"inputs":[{"internalType":"bytes32","name":"_id","type":"bytes32"}],"name":"unlock","outputs":[{"internalType":"bool","name":"","type":"bool"}],"stateMutability":"nonpayable","type":"function"},
  {"inputs":[{"internalType":"bytes","name":"_recipient","type":"bytes"},{"internalType":"address","name":"_token","type":"address"},{"internalType":"uint256","name":"_amount","type":"uint256"}],"name":"lock","outputs":[{"internalType":"bytes32","name":"","type":"bytes32"}],"stateMutability":"payable","type":"function"}
]`

func writeABI(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeABI(t, dir, "Peggy.abi", peggyABI)
	writeABI(t, dir, "Valset.abi", `[{"inputs":[],"name":"size","outputs":[{"internalType":"uint256","name":"","type":"uint256"}],"stateMutability":"view","type":"function"}]`)
	writeABI(t, dir, "README.md", "not an abi")

	got, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Peggy", got[0].Contract)
	assert.True(t, got[0].Constructor)
	assert.Equal(t, []string{"lock(bytes,address,uint256)", "unlock(bytes32)"}, got[0].Methods)
	assert.Equal(t, []string{"LogLock(bytes32,uint256)"}, got[0].Events)

	assert.Equal(t, "Valset", got[1].Contract)
	assert.Equal(t, []string{"size()"}, got[1].Methods)
}

func TestLoad_MissingDir(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "abi"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoad_InvalidABI(t *testing.T) {
	dir := t.TempDir()
	writeABI(t, dir, "Broken.abi", `{"not": "an abi array"`)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken.abi")
}

func TestArtifact_String(t *testing.T) {
	dir := t.TempDir()
	writeABI(t, dir, "Peggy.abi", peggyABI)

	a, err := Parse(filepath.Join(dir, "Peggy.abi"))
	require.NoError(t, err)

	s := a.String()
	assert.Contains(t, s, "Peggy (")
	assert.Contains(t, s, "constructor")
	assert.Contains(t, s, "methods (2):")
	assert.Contains(t, s, "    lock(bytes,address,uint256)")
	assert.Contains(t, s, "events (1):")
	assert.NotContains(t, s, "errors")
}

func TestFind(t *testing.T) {
	arts := []Artifact{{Contract: "Peggy"}, {Contract: "Valset"}}
	require.NotNil(t, Find(arts, "Valset"))
	assert.Nil(t, Find(arts, "Oracle"))
}
