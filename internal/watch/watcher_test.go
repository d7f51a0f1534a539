package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReloadOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compounds.tsv")
	require.NoError(t, os.WriteFile(path, []byte("CHEMBL1\tC\tI\tK\n"), 0o644))

	var reloads atomic.Int64
	w, err := New(path, 20*time.Millisecond, zap.NewNop(), func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte("CHEMBL2\tC\tI\tK\n"), 0o644))

	assert.Eventually(t, func() bool { return reloads.Load() > 0 },
		2*time.Second, 10*time.Millisecond)
}

func TestIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compounds.tsv")
	require.NoError(t, os.WriteFile(path, []byte("CHEMBL1\tC\tI\tK\n"), 0o644))

	var reloads atomic.Int64
	w, err := New(path, 20*time.Millisecond, zap.NewNop(), func() error {
		reloads.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.Start()
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	time.Sleep(200 * time.Millisecond)
	assert.Zero(t, reloads.Load())
}

func TestStopWithPendingDebounce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "compounds.tsv")
	require.NoError(t, os.WriteFile(path, []byte("CHEMBL1\tC\tI\tK\n"), 0o644))

	w, err := New(path, time.Hour, zap.NewNop(), func() error { return nil })
	require.NoError(t, err)
	w.Start()

	// A pending debounce timer must not block shutdown.
	require.NoError(t, os.WriteFile(path, []byte("CHEMBL2\tC\tI\tK\n"), 0o644))
	time.Sleep(50 * time.Millisecond)
	w.Stop()
}

func TestMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope", "compounds.tsv"),
		time.Second, zap.NewNop(), func() error { return nil })
	assert.Error(t, err)
}
