package isoxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const sampleDoc = `<?xml version="1.0"?>
<ISO11783_TaskData VersionMajor="4" VersionMinor="3" Extra="carried">
  <CTR A="CTR1" B="Acme Farms"/>
  <FRM A="FRM1" B="North 40" I="CTR1"/>
  <PFD A="PFD1" C="Home Field" D="40000" F="FRM1">
    <PLN A="1">
      <LSG A="1">
        <PNT A="10" C="45.0" D="0.0"/>
        <PNT A="10" C="45.001" D="0.0"/>
        <PNT A="10" C="45.001" D="0.001"/>
        <PNT A="10" C="45.0" D="0.0"/>
      </LSG>
    </PLN>
    <UnknownChild foo="bar"/>
  </PFD>
</ISO11783_TaskData>`

func TestReadSampleDocument(t *testing.T) {
	log := zap.NewNop()
	rd := NewReader(log)

	td, err := rd.Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, 4, td.VersionMajor)
	assert.Equal(t, 3, td.VersionMinor)
	require.Len(t, td.UnknownAt, 1)
	assert.Equal(t, "Extra", td.UnknownAt[0].Name.Local)

	require.Len(t, td.Customers, 1)
	assert.Equal(t, "CTR1", td.Customers[0].ID)

	require.Len(t, td.Farms, 1)
	assert.Equal(t, "CTR1", td.Farms[0].CustomerID)

	require.Len(t, td.Fields, 1)
	field := td.Fields[0]
	assert.Equal(t, "FRM1", field.FarmID)
	require.Len(t, field.Polygons, 1)
	require.Len(t, field.Polygons[0].Lines, 1)
	assert.Len(t, field.Polygons[0].Lines[0].Points, 4)
}

func TestReadLogsUnknownElement(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	log := zap.New(core)
	rd := NewReader(log)

	_, err := rd.Read(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	found := false
	for _, entry := range logs.All() {
		if strings.Contains(entry.Message, "unknown child element") {
			found = true
		}
	}
	assert.True(t, found, "expected a warning about the unknown PFD child element")
}

func TestReadRejectsBadCustomerID(t *testing.T) {
	const doc = `<ISO11783_TaskData VersionMajor="4" VersionMinor="3">
  <CTR A="NOTANID" B="Acme"/>
</ISO11783_TaskData>`
	rd := NewReader(zap.NewNop())
	_, err := rd.Read(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestReadRejectsShortRing(t *testing.T) {
	const doc = `<ISO11783_TaskData VersionMajor="4" VersionMinor="3">
  <PFD A="PFD1" C="Home Field" D="1" F="FRM1">
    <PLN A="1">
      <LSG A="1">
        <PNT A="10" C="45.0" D="0.0"/>
        <PNT A="10" C="45.001" D="0.0"/>
        <PNT A="10" C="45.0" D="0.0"/>
      </LSG>
    </PLN>
  </PFD>
</ISO11783_TaskData>`
	rd := NewReader(zap.NewNop())
	_, err := rd.Read(strings.NewReader(doc))
	assert.Error(t, err)
}
