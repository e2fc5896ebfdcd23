package archive

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteThenExtractRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TASKDATA.zip")
	payload := []byte("<ISO11783_TaskData VersionMajor=\"4\" VersionMinor=\"3\"/>")

	require.NoError(t, WriteEntry(path, TaskDataEntryPath, payload))

	got, err := ExtractEntry(path, TaskDataEntryPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestExtractMissingEntryErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.zip")
	require.NoError(t, WriteEntry(path, "OTHER/PATH.XML", []byte("x")))

	_, err := ExtractEntry(path, TaskDataEntryPath)
	assert.Error(t, err)
}

func TestExtractMissingFileErrors(t *testing.T) {
	_, err := ExtractEntry(filepath.Join(t.TempDir(), "nope.zip"), TaskDataEntryPath)
	assert.Error(t, err)
}
