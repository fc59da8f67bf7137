package cmd

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/container-registry/devicekey/internal/devicekey"
	"github.com/stretchr/testify/require"
)

func writeLinuxConfig(t *testing.T, machineID string) string {
	t.Helper()
	dir := t.TempDir()
	idPath := filepath.Join(dir, "machine-id")
	require.NoError(t, os.WriteFile(idPath, []byte(machineID+"\n"), 0o644))

	cfgPath := filepath.Join(dir, "devicekey.json")
	cfg := `{"log_level":"error","platform":"linux","machine_id_paths":["` + filepath.Join(dir, "missing") + `","` + idPath + `"]}`
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o644))
	return cfgPath
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestKeyCommand(t *testing.T) {
	cfgPath := writeLinuxConfig(t, "b08dfa6083e7567a1921a715000001fb")
	want := devicekey.Normalize("b08dfa6083e7567a1921a715000001fb")

	t.Run("hex output", func(t *testing.T) {
		out, err := execute(t, "key", "--config", cfgPath)
		require.NoError(t, err)
		require.Equal(t, hex.EncodeToString(want[:]), strings.TrimSpace(out))
	})

	t.Run("uuid output", func(t *testing.T) {
		out, err := execute(t, "key", "--config", cfgPath, "--uuid")
		require.NoError(t, err)
		require.Len(t, strings.TrimSpace(out), 36)
	})

	t.Run("writes metrics file", func(t *testing.T) {
		metricsPath := filepath.Join(t.TempDir(), "devicekey.prom")
		_, err := execute(t, "key", "--config", cfgPath, "--metrics-file", metricsPath)
		require.NoError(t, err)

		data, err := os.ReadFile(metricsPath)
		require.NoError(t, err)
		require.Contains(t, string(data), `source="machine-id"`)
	})
}

func TestKeyCommand_OtherPlatformFallsBack(t *testing.T) {
	out, err := execute(t, "key", "--config", "", "--platform", "other", "--log-level", "error")
	require.NoError(t, err)
	require.Len(t, strings.TrimSpace(out), 2*devicekey.KeySize)
}

func TestUUIDCommand(t *testing.T) {
	first, err := execute(t, "uuid", "--config", "")
	require.NoError(t, err)
	second, err := execute(t, "uuid", "--config", "")
	require.NoError(t, err)

	require.Len(t, strings.TrimSpace(first), 36)
	require.NotEqual(t, first, second)
}

func TestSealUnsealCommands(t *testing.T) {
	cfgPath := writeLinuxConfig(t, "mock-machine-id-12345")
	dir := t.TempDir()
	plain := filepath.Join(dir, "credentials.json")
	sealed := filepath.Join(dir, "credentials.sealed")
	opened := filepath.Join(dir, "credentials.out")

	require.NoError(t, os.WriteFile(plain, []byte(`{"token":"jwt-token-xyz"}`), 0o600))

	_, err := execute(t, "seal", plain, sealed, "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(sealed)
	require.NoError(t, err)
	require.NotContains(t, string(data), "jwt-token-xyz")

	_, err = execute(t, "unseal", sealed, opened, "--config", cfgPath)
	require.NoError(t, err)

	roundtrip, err := os.ReadFile(opened)
	require.NoError(t, err)
	require.Equal(t, `{"token":"jwt-token-xyz"}`, string(roundtrip))

	t.Run("another device cannot unseal", func(t *testing.T) {
		otherCfg := writeLinuxConfig(t, "another-machine")
		_, err := execute(t, "unseal", sealed, filepath.Join(dir, "nope"), "--config", otherCfg)
		require.Error(t, err)
	})
}

func TestRootCommand_InvalidConfigFile(t *testing.T) {
	_, err := execute(t, "key", "--config", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
