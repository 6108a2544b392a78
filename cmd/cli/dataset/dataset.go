// Package dataset holds the preprocessing commands that turn the raw Paris
// OpenData exports into the corpus asset served by the game.
package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/spf13/cobra"

	"github.com/bclaudel/paname/internal/corpus"
	"github.com/bclaudel/paname/internal/errors"
)

var Group = &cobra.Group{
	ID:    "dataset",
	Title: "Dataset operations",
}

// Entity ids are namespaced so that street and station ids from the two
// source datasets can never collide.
const (
	stationIDPrefix = "100"
	streetIDPrefix  = "200"
)

func init() {
	Build.Flags().String("streets", "./voies.geojson", "path to the raw street export")
	Build.Flags().String("stations", "./stations.geojson", "path to the raw station export")
	Build.Flags().String("out", "./dataset.geojson", "path to the corpus asset to write")
	Stats.Flags().String("in", "./ui/static/dataset.geojson", "path to the corpus asset")
}

var Build = &cobra.Command{
	Use:     "build",
	GroupID: "dataset",
	Short:   "Build the corpus asset",
	Long: `Preprocesses the raw OpenData exports into the corpus asset: computes
street lengths, namespaces ids, keeps metro stations only.`,
	Run: func(cmd *cobra.Command, _ []string) {
		streetsPath, _ := cmd.Flags().GetString("streets")
		stationsPath, _ := cmd.Flags().GetString("stations")
		outPath, _ := cmd.Flags().GetString("out")
		if err := build(streetsPath, stationsPath, outPath); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Printf("The corpus asset was saved as %s\n", outPath)
	},
}

var Stats = &cobra.Command{
	Use:     "stats",
	GroupID: "dataset",
	Short:   "Print corpus totals",
	Run: func(cmd *cobra.Command, _ []string) {
		inPath, _ := cmd.Flags().GetString("in")
		if err := stats(inPath, os.Stdout); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func build(streetsPath, stationsPath, outPath string) error {
	streets, err := loadCollection(streetsPath)
	if err != nil {
		return errors.Wrap(err, "load street export")
	}
	stations, err := loadCollection(stationsPath)
	if err != nil {
		return errors.Wrap(err, "load station export")
	}

	out := geojson.NewFeatureCollection()
	var (
		totalLength     float64
		stationsPerLine = map[string]int{}
	)

	for _, f := range streets.Features {
		id, ok := namespacedID(streetIDPrefix, f.Properties["objectid"])
		if !ok {
			continue
		}
		length := geo.Length(f.Geometry) / 1000
		totalLength += length
		street := geojson.NewFeature(f.Geometry)
		street.ID = id
		street.Properties = geojson.Properties{
			"id":         id,
			"name":       f.Properties.MustString("l_voie", ""),
			"long_name":  f.Properties.MustString("l_longmin", ""),
			"short_name": f.Properties.MustString("l_courtmin", ""),
			"type":       f.Properties.MustString("c_desi", ""),
			"length":     length,
		}
		out.Append(street)
	}

	for _, f := range stations.Features {
		line := f.Properties.MustString("res_com", "")
		if !strings.HasPrefix(line, "METRO") {
			continue
		}
		id, ok := namespacedID(stationIDPrefix, f.Properties["id_gares"])
		if !ok {
			continue
		}
		stationsPerLine[line]++
		station := geojson.NewFeature(f.Geometry)
		station.ID = id
		station.Properties = geojson.Properties{
			"id":        id,
			"name":      f.Properties.MustString("nom_gares", ""),
			"long_name": f.Properties.MustString("nom_zdc", ""),
			"type":      "metro",
			"line":      line,
		}
		out.Append(station)
	}

	totalStations := 0
	for _, n := range stationsPerLine {
		totalStations += n
	}
	// Collection-level totals are informational; the server recomputes them
	// from the features at load time.
	out.ExtraMembers = geojson.Properties{
		"properties": map[string]any{
			"totalLength":     totalLength,
			"totalStations":   totalStations,
			"stationsPerLine": stationsPerLine,
		},
	}

	data, err := json.Marshal(out)
	if err != nil {
		return errors.Wrap(err, "marshal corpus asset")
	}
	if err = os.WriteFile(outPath, data, 0o644); err != nil {
		return errors.Wrap(err, "write corpus asset")
	}
	return nil
}

func stats(inPath string, w io.Writer) error {
	f, err := os.Open(inPath)
	if err != nil {
		return errors.Wrap(err, "open corpus asset")
	}
	defer func() {
		_ = f.Close()
	}()

	c, err := corpus.Load(f)
	if err != nil {
		return errors.Wrap(err, "load corpus")
	}

	totals := c.Totals()
	_, _ = fmt.Fprintf(w, "entities: %d\n", c.Len())
	_, _ = fmt.Fprintf(w, "street length: %.1f km\n", totals.Length)
	_, _ = fmt.Fprintf(w, "stations: %d\n", totals.Stations)
	for _, line := range c.Lines() {
		_, _ = fmt.Fprintf(w, "  %s: %d\n", line, totals.StationsPerLine[line])
	}
	_, _ = fmt.Fprintf(w, "version: %s\n", strconv.FormatUint(c.Version(), 16))
	return nil
}

func loadCollection(path string) (*geojson.FeatureCollection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshal feature collection")
	}
	return fc, nil
}

// namespacedID prefixes a source id with the kind namespace. The raw exports
// are inconsistent about id types, numbers and strings both occur.
func namespacedID(prefix string, v any) (int64, bool) {
	var raw string
	switch n := v.(type) {
	case float64:
		raw = strconv.FormatInt(int64(n), 10)
	case string:
		raw = n
	default:
		return 0, false
	}
	id, err := strconv.ParseInt(prefix+raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
