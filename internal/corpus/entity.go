package corpus

import "strings"

// Entity id ranges are namespaced by kind so that stations and streets never
// collide within one corpus snapshot: station ids carry the decimal prefix
// 100, street ids the prefix 200 (see cmd/cli dataset build).
const (
	StationIDPrefix = "100"
	StreetIDPrefix  = "200"
)

// KindMetro marks transit stations; every other kind is a street
// classification from the street dataset (rue, avenue, boulevard, ...).
const KindMetro = "metro"

// Entity is one street, station, or line segment of the dataset.
type Entity struct {
	// ID is stable and unique within a corpus snapshot. It is the join key
	// for found-set membership.
	ID int64
	// Name, LongName, and ShortName are the display strings the fuzzy index
	// searches over. Any of them may be empty.
	Name      string
	LongName  string
	ShortName string
	// Kind discriminates streets from stations.
	Kind string
	// Line is the transit line for stations, e.g. "METRO 7bis". Empty for streets.
	Line string
	// Length is the street length in kilometers. Zero for point entities.
	Length float64
	// Lon and Lat are a representative coordinate used only for the
	// approximate spatial ordering of the found list.
	Lon float64
	Lat float64
}

// IsStation reports whether the entity is a transit station.
func (e Entity) IsStation() bool {
	return e.Kind == KindMetro
}

// DisplayName is the name shown in the found list, preferring the long form.
func (e Entity) DisplayName() string {
	if e.LongName != "" {
		return e.LongName
	}
	return e.Name
}

// Mode groups transit lines by their network prefix.
type Mode string

const (
	ModeMetro Mode = "METRO"
	ModeRER   Mode = "RER"
	ModeTram  Mode = "TRAM"
	ModeTrain Mode = "TRAIN"
	ModeOther Mode = "OTHER"
)

// LineMode derives the transport mode from a line identifier.
func LineMode(line string) Mode {
	switch {
	case strings.HasPrefix(line, "METRO"):
		return ModeMetro
	case strings.HasPrefix(line, "RER"):
		return ModeRER
	case strings.HasPrefix(line, "TRAM"):
		return ModeTram
	case strings.HasPrefix(line, "TRAIN"):
		return ModeTrain
	default:
		return ModeOther
	}
}
