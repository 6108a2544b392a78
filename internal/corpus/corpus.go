// Package corpus loads and serves the immutable geographic dataset the game
// is played against. A corpus is built once at process start and never
// mutated; replacing the dataset (e.g. growing from the metro to the whole
// regional network) means constructing a new corpus and migrating player
// progress onto it.
package corpus

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/bclaudel/paname/internal/errors"
)

// Totals are the aggregate denominators for the progress statistics.
type Totals struct {
	// Length is the summed street length in kilometers.
	Length float64
	// Stations is the number of station entities.
	Stations int
	// StationsPerLine counts stations grouped by their line identifier.
	StationsPerLine map[string]int
}

// Corpus is an immutable ordered collection of entities plus precomputed
// aggregate totals and an id lookup index.
type Corpus struct {
	entities []Entity
	byID     map[int64]int
	totals   Totals
	version  uint64
}

// New constructs a corpus from entities, preserving their order. Totals, the
// id index, and the version fingerprint are computed once here.
func New(entities []Entity) *Corpus {
	c := Corpus{
		entities: entities,
		byID:     make(map[int64]int, len(entities)),
		totals: Totals{
			Length:          0,
			Stations:        0,
			StationsPerLine: map[string]int{},
		},
		version: 0,
	}

	digest := xxhash.New()
	var buf [8]byte
	for i, e := range entities {
		c.byID[e.ID] = i
		c.totals.Length += e.Length
		if e.IsStation() {
			c.totals.Stations++
			if e.Line != "" {
				c.totals.StationsPerLine[e.Line]++
			}
		}
		binary.LittleEndian.PutUint64(buf[:], uint64(e.ID))
		_, _ = digest.Write(buf[:])
		_, _ = digest.WriteString(e.Name)
	}
	c.version = digest.Sum64()

	return &c
}

// Load reads a GeoJSON feature collection produced by `paname dataset build`
// and constructs a corpus from it. Features without a numeric id are skipped;
// geometry beyond a representative coordinate is opaque to the game.
func Load(r io.Reader) (*Corpus, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read corpus asset")
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}

	entities := make([]Entity, 0, len(fc.Features))
	for _, f := range fc.Features {
		id, ok := featureID(f)
		if !ok {
			continue
		}
		lon, lat := representativePoint(f.Geometry)
		entities = append(entities, Entity{
			ID:        id,
			Name:      f.Properties.MustString("name", ""),
			LongName:  f.Properties.MustString("long_name", ""),
			ShortName: f.Properties.MustString("short_name", ""),
			Kind:      f.Properties.MustString("type", ""),
			Line:      f.Properties.MustString("line", ""),
			Length:    f.Properties.MustFloat64("length", 0),
			Lon:       lon,
			Lat:       lat,
		})
	}

	return New(entities), nil
}

// Entities returns the corpus contents in load order. Callers must not
// mutate the returned slice.
func (c *Corpus) Entities() []Entity {
	return c.entities
}

// Len returns the number of entities.
func (c *Corpus) Len() int {
	return len(c.entities)
}

// ByID resolves an entity by its id.
func (c *Corpus) ByID(id int64) (Entity, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entity{}, false
	}
	return c.entities[i], true
}

// Contains reports whether id exists in the corpus.
func (c *Corpus) Contains(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// Totals returns the aggregate denominators for progress statistics.
func (c *Corpus) Totals() Totals {
	return c.totals
}

// Lines returns the station line identifiers in display order.
func (c *Corpus) Lines() []string {
	lines := make([]string, 0, len(c.totals.StationsPerLine))
	for line := range c.totals.StationsPerLine {
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return LineOrder(lines[i]) < LineOrder(lines[j])
	})
	return lines
}

// Version is a fingerprint over entity ids and names. A stored found-set
// whose version differs from the loaded corpus's belongs to an older dataset
// and must be migrated.
func (c *Corpus) Version() uint64 {
	return c.version
}

func featureID(f *geojson.Feature) (int64, bool) {
	switch id := f.ID.(type) {
	case float64:
		return int64(id), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	}
	// Fall back to the id property written by the preprocessor.
	if v, ok := f.Properties["id"]; ok {
		if n, isFloat := v.(float64); isFloat {
			return int64(n), true
		}
	}
	return 0, false
}

func representativePoint(g orb.Geometry) (float64, float64) {
	switch geom := g.(type) {
	case orb.Point:
		return geom.Lon(), geom.Lat()
	case orb.LineString:
		if len(geom) > 0 {
			return geom[0].Lon(), geom[0].Lat()
		}
	case orb.MultiLineString:
		if len(geom) > 0 && len(geom[0]) > 0 {
			return geom[0][0].Lon(), geom[0][0].Lat()
		}
	}
	return 0, 0
}
