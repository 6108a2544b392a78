package corpus_test

import (
	"strings"
	"testing"

	"github.com/bclaudel/paname/internal/corpus"
	"github.com/stretchr/testify/require"
)

func testEntities() []corpus.Entity {
	return []corpus.Entity{
		{ID: 2001, Name: "Rue de Rivoli", LongName: "Rue de Rivoli", Kind: "rue", Length: 3.0},
		{ID: 2002, Name: "Rue de Rennes", LongName: "Rue de Rennes", Kind: "rue", Length: 1.0},
		{ID: 1001, Name: "Gare du Nord", Kind: corpus.KindMetro, Line: "METRO 4", Lon: 2.355, Lat: 48.88},
		{ID: 1002, Name: "Gare du Nord", Kind: corpus.KindMetro, Line: "METRO 5", Lon: 2.355, Lat: 48.88},
		{ID: 1003, Name: "Bastille", Kind: corpus.KindMetro, Line: "METRO 5", Lon: 2.369, Lat: 48.853},
	}
}

func TestNew_totals(t *testing.T) {
	c := corpus.New(testEntities())

	require.Equal(t, 5, c.Len())
	totals := c.Totals()
	require.InDelta(t, 4.0, totals.Length, 1e-9)
	require.Equal(t, 3, totals.Stations)
	require.Equal(t, map[string]int{"METRO 4": 1, "METRO 5": 2}, totals.StationsPerLine)
	require.Equal(t, []string{"METRO 4", "METRO 5"}, c.Lines())
}

func TestCorpus_ByID(t *testing.T) {
	c := corpus.New(testEntities())

	e, ok := c.ByID(1003)
	require.True(t, ok)
	require.Equal(t, "Bastille", e.Name)

	_, ok = c.ByID(9999)
	require.False(t, ok)
	require.False(t, c.Contains(9999))
	require.True(t, c.Contains(2001))
}

func TestCorpus_Version(t *testing.T) {
	a := corpus.New(testEntities())
	b := corpus.New(testEntities())
	require.Equal(t, a.Version(), b.Version(), "version must be deterministic")

	grown := corpus.New(append(testEntities(), corpus.Entity{ID: 1004, Name: "Nation", Kind: corpus.KindMetro, Line: "METRO 1"}))
	require.NotEqual(t, a.Version(), grown.Version(), "version must change when the dataset changes")
}

func TestLoad(t *testing.T) {
	asset := `{
		"type": "FeatureCollection",
		"features": [
			{
				"type": "Feature",
				"id": 2001,
				"geometry": {"type": "LineString", "coordinates": [[2.33, 48.86], [2.35, 48.86]]},
				"properties": {"id": 2001, "name": "Rue de Rivoli", "long_name": "Rue de Rivoli", "type": "rue", "length": 3.0}
			},
			{
				"type": "Feature",
				"id": 1001,
				"geometry": {"type": "Point", "coordinates": [2.355, 48.88]},
				"properties": {"id": 1001, "name": "Gare du Nord", "long_name": "Gare du Nord (Paris)", "type": "metro", "line": "METRO 4"}
			}
		],
		"properties": {"totalLength": 3.0, "totalStations": 1, "stationsPerLine": {"METRO 4": 1}}
	}`

	c, err := corpus.Load(strings.NewReader(asset))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	street, ok := c.ByID(2001)
	require.True(t, ok)
	require.Equal(t, "Rue de Rivoli", street.Name)
	require.InDelta(t, 3.0, street.Length, 1e-9)
	require.InDelta(t, 2.33, street.Lon, 1e-9)

	station, ok := c.ByID(1001)
	require.True(t, ok)
	require.True(t, station.IsStation())
	require.Equal(t, "Gare du Nord (Paris)", station.DisplayName())
	require.Equal(t, 1, c.Totals().Stations)
}

func TestLoad_malformed(t *testing.T) {
	_, err := corpus.Load(strings.NewReader("not geojson"))
	require.Error(t, err)
}

func TestLineOrder(t *testing.T) {
	require.Less(t, corpus.LineOrder("METRO 3"), corpus.LineOrder("METRO 3bis"))
	require.Less(t, corpus.LineOrder("METRO 3bis"), corpus.LineOrder("METRO 4"))
	require.Less(t, corpus.LineOrder("METRO 14"), corpus.LineOrder("RER A"))
	require.Less(t, corpus.LineOrder("RER A"), corpus.LineOrder("RER B"))
	require.Less(t, corpus.LineOrder("RER E"), corpus.LineOrder("TRAM 3a"))
	require.Less(t, corpus.LineOrder("TRAM 1"), corpus.LineOrder("TRAIN H"))
	require.Less(t, corpus.LineOrder("TRAIN H"), corpus.LineOrder(""))
}

func TestLineLabel(t *testing.T) {
	require.Equal(t, "7b", corpus.LineLabel("METRO 7bis"))
	require.Equal(t, "A", corpus.LineLabel("RER A"))
	require.Equal(t, "14", corpus.LineLabel("METRO 14"))
	require.Equal(t, "", corpus.LineLabel(""))
}
