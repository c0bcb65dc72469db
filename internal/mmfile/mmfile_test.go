package mmfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapReadsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	want := []byte("twelve bytes")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, cleanup, err := Map(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.NoError(t, cleanup())
}

func TestMapEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, cleanup, err := Map(path)
	require.NoError(t, err)
	require.Empty(t, got)
	require.NoError(t, cleanup())
}

func TestMapMissingFile(t *testing.T) {
	_, _, err := Map(filepath.Join(t.TempDir(), "absent.bin"))
	require.Error(t, err)
}
