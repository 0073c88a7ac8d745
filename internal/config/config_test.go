package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadWithNoPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverlaysOnlySetFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kvshm.jsonc")
	writeFile(t, path, `{
		// bucket count only; worker_count and segment_name inherit defaults
		"bucket_count": 64,
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 64, cfg.BucketCount)
	require.Equal(t, Default().WorkerCount, cfg.WorkerCount)
	require.Equal(t, Default().SegmentName, cfg.SegmentName)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.jsonc")
	writeFile(t, path, `{ not json `)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.jsonc"))
	require.Error(t, err)
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}
