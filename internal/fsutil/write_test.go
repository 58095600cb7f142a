package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParentsAndContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "draft.yaml")

	require.NoError(t, WriteFile(path, []byte("age: \"30\"\n"), 0600))

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "age: \"30\"\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.html")

	require.NoError(t, WriteFile(path, []byte("one"), 0644))
	require.NoError(t, WriteFile(path, []byte("two"), 0644))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"report.html", "report.html.lock"}, names)
}

func TestWriteFile_ConcurrentWritersNeverInterleave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, WriteFile(path, []byte(fmt.Sprintf("writer-%d", i)), 0644))
		}(i)
	}
	wg.Wait()

	data, err := ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `^writer-[0-7]$`, string(data))
}

func TestRemoveFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.yaml")
	require.NoError(t, WriteFile(path, []byte("x"), 0644))

	require.NoError(t, RemoveFile(path))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemoveFile(path), "removing a missing file is fine")
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, os.IsNotExist(err))
}
