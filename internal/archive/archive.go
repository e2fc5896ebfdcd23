// Package archive extracts and writes the single-entry ZIP archives
// §9 describes for TASKDATA input/output: a zip input carries its XML
// at "TASKDATA/TASKDATA.XML"; a zip output writes one entry at the same
// path. Every open handle here is released on every exit path,
// including errors (§9's "scoped acquisition... with guaranteed
// release").
package archive

import (
	"archive/zip"
	"io"
	"os"

	"github.com/isoagro/fieldinset/internal/ferrors"
)

// TaskDataEntryPath is the fixed path a TASKDATA zip carries its XML
// payload at, both on input and on output.
const TaskDataEntryPath = "TASKDATA/TASKDATA.XML"

// ExtractEntry opens the zip at zipPath, reads entryPath's bytes exactly
// once, and returns them. This resolves §9's ambiguity about the
// number of times an entry gets extracted: one read, one copy, no more.
func ExtractEntry(zipPath, entryPath string) ([]byte, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "archive: opening %s", zipPath)
	}
	defer zr.Close()

	f, err := zr.Open(entryPath)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "archive: %s has no entry %s", zipPath, entryPath)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, ferrors.Wrapf(ferrors.IoError, err, "archive: reading %s from %s", entryPath, zipPath)
	}
	return data, nil
}

// WriteEntry writes data as the single entry entryPath inside a new zip
// archive at zipPath, truncating any existing file there.
func WriteEntry(zipPath, entryPath string, data []byte) error {
	f, err := os.Create(zipPath)
	if err != nil {
		return ferrors.Wrapf(ferrors.IoError, err, "archive: creating %s", zipPath)
	}
	defer f.Close()

	zw := zip.NewWriter(f)

	w, err := zw.Create(entryPath)
	if err != nil {
		zw.Close()
		return ferrors.Wrapf(ferrors.IoError, err, "archive: creating entry %s in %s", entryPath, zipPath)
	}
	if _, err := w.Write(data); err != nil {
		zw.Close()
		return ferrors.Wrapf(ferrors.IoError, err, "archive: writing entry %s in %s", entryPath, zipPath)
	}
	if err := zw.Close(); err != nil {
		return ferrors.Wrapf(ferrors.IoError, err, "archive: closing zip writer for %s", zipPath)
	}
	return nil
}
