package dataset

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "Key,tCreated\nCSD-1,2025-01-01\n"

func writeGzip(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w := gzip.NewWriter(f)
	_, err = io.WriteString(w, sample)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func writeZstd(t *testing.T, path string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	w, err := zstd.NewWriter(f)
	require.NoError(t, err)
	_, err = io.WriteString(w, sample)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())
}

func TestOpenDecompressesBySuffix(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "tickets.csv")
	require.NoError(t, os.WriteFile(plain, []byte(sample), 0o600))
	gz := filepath.Join(dir, "tickets.csv.gz")
	writeGzip(t, gz)
	zst := filepath.Join(dir, "tickets.csv.zst")
	writeZstd(t, zst)

	for _, path := range []string{plain, gz, zst} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			rc, err := Open(path)
			require.NoError(t, err)
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			require.NoError(t, rc.Close())
			assert.Equal(t, sample, string(data))
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenCorruptGzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.csv.gz")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))
	_, err := Open(path)
	assert.Error(t, err)
}

func TestCreateRoundTripsThroughOpen(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.csv", "out.csv.gz", "out.csv.zst"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			wc, err := Create(path)
			require.NoError(t, err)
			_, err = io.WriteString(wc, sample)
			require.NoError(t, err)
			require.NoError(t, wc.Close())

			rc, err := Open(path)
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			assert.Equal(t, sample, string(data))
		})
	}
}
