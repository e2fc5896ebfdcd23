package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isoagro/fieldinset/internal/archive"
	"github.com/isoagro/fieldinset/internal/farmdb"
	"github.com/isoagro/fieldinset/internal/ferrors"
	"github.com/isoagro/fieldinset/internal/geo"
)

func TestValidateExtensionAccepts(t *testing.T) {
	assert.NoError(t, validateExtension("foo.xml", []string{".xml", ".zip"}))
	assert.NoError(t, validateExtension("foo.XML", []string{".xml", ".zip"}))
	assert.NoError(t, validateExtension("foo.zip", []string{".xml", ".zip"}))
}

func TestValidateExtensionRejects(t *testing.T) {
	err := validateExtension("foo.shp", []string{".xml", ".zip"})
	require.Error(t, err)
	kind, ok := ferrors.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, ferrors.InvalidInput, kind)
}

func TestReadInputPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "TASKDATA.XML")
	require.NoError(t, os.WriteFile(path, []byte("<doc/>"), 0o644))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "<doc/>", string(data))
}

func TestReadInputZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, archive.WriteEntry(path, archive.TaskDataEntryPath, []byte("<doc/>")))

	data, err := readInput(path)
	require.NoError(t, err)
	assert.Equal(t, "<doc/>", string(data))
}

func TestWriteOutputWkt(t *testing.T) {
	db := farmdb.NewFarmDb()
	cust := db.AddCustomer("C1", "Acme")
	farm := db.AddFarm("F1", "North 40", cust)
	field := db.AddField("FLD1", "Home Field", 0, "", farm)
	d := geo.NewDegrees
	db.SetPart(field, 0, geo.GeoPolygon{Outer: geo.GeoRing{
		{Lat: d(0), Lon: d(0)}, {Lat: d(0), Lon: d(1)}, {Lat: d(1), Lon: d(1)}, {Lat: d(1), Lon: d(0)},
	}})

	path := filepath.Join(t.TempDir(), "out.wkt")
	require.NoError(t, writeOutput(path, db))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Home Field")
	assert.Contains(t, string(data), "POLYGON")
}

func TestWriteOutputXmlZip(t *testing.T) {
	db := farmdb.NewFarmDb()
	cust := db.AddCustomer("C1", "Acme")
	farm := db.AddFarm("F1", "North 40", cust)
	field := db.AddField("FLD1", "Home Field", 0, "", farm)
	d := geo.NewDegrees
	db.SetPart(field, 0, geo.GeoPolygon{Outer: geo.GeoRing{
		{Lat: d(0), Lon: d(0)}, {Lat: d(0), Lon: d(1)}, {Lat: d(1), Lon: d(1)}, {Lat: d(1), Lon: d(0)},
	}})

	path := filepath.Join(t.TempDir(), "out.zip")
	require.NoError(t, writeOutput(path, db))

	data, err := archive.ExtractEntry(path, archive.TaskDataEntryPath)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte("ISO11783_TaskData")))
}

func TestNewRootCmdRejectsMissingRequiredFlags(t *testing.T) {
	opts := &options{}
	cmd := newRootCmd(opts)
	cmd.SetArgs([]string{})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))
	assert.Error(t, cmd.Execute())
}

func TestExitCodeMapsInvalidInputToTwo(t *testing.T) {
	err := ferrors.Errorf(ferrors.InvalidInput, "bad extension")
	assert.Equal(t, 2, exitCode(err))
}

func TestExitCodeMapsOtherKindsToOne(t *testing.T) {
	err := ferrors.Errorf(ferrors.IoError, "disk exploded")
	assert.Equal(t, 1, exitCode(err))
}

func TestExitCodeMapsCobraFlagErrorsToTwo(t *testing.T) {
	opts := &options{}
	cmd := newRootCmd(opts)
	cmd.SetArgs([]string{})
	cmd.SetOut(bytes.NewBuffer(nil))
	cmd.SetErr(bytes.NewBuffer(nil))

	err := cmd.Execute()
	require.Error(t, err)
	_, ok := ferrors.KindOf(err)
	assert.False(t, ok, "a cobra-level flag error should not be ferrors-kinded")
	assert.Equal(t, 2, exitCode(err))
}
