// Package climb defines the record model for climbing routes as they
// arrive from the OpenBeta API. Optional fields are pointers: a nil
// pointer means the source did not provide the value, which is distinct
// from an empty string, zero or false.
package climb

// Hierarchy levels encoded positionally in PathTokens, broadest first.
const (
	LevelCountry = 1
	LevelState   = 2
	LevelRegion  = 3
	LevelArea    = 4
	LevelCrag    = 5
	LevelSubArea = 6
)

// Climb is one route record. Records are immutable after ingestion:
// the relation store and schema engine only ever read them.
type Climb struct {
	UUID       string    `json:"uuid"`
	Name       string    `json:"name"`
	FA         *string   `json:"fa,omitempty"`
	Length     *int64    `json:"length,omitempty"`
	BoltsCount *int64    `json:"boltsCount,omitempty"`
	Grades     Grades    `json:"grades"`
	Type       TypeFlags `json:"type"`
	Safety     *string   `json:"safety,omitempty"`
	Metadata   Metadata  `json:"metadata"`
	Content    Content   `json:"content"`
	PathTokens []string  `json:"pathTokens"`
}

// Grades maps grading systems to an optional grade string.
// A missing system is absent, not an empty string.
type Grades struct {
	YDS     *string `json:"yds,omitempty"`
	VScale  *string `json:"vscale,omitempty"`
	French  *string `json:"french,omitempty"`
	Ewbank  *string `json:"ewbank,omitempty"`
	UIAA    *string `json:"uiaa,omitempty"`
	ZA      *string `json:"za,omitempty"`
	British *string `json:"british,omitempty"`
}

// TypeFlags marks the climbing disciplines of a route.
// A nil flag means unknown, not false.
type TypeFlags struct {
	Sport      *bool `json:"sport,omitempty"`
	Trad       *bool `json:"trad,omitempty"`
	Bouldering *bool `json:"bouldering,omitempty"`
	Alpine     *bool `json:"alpine,omitempty"`
	TR         *bool `json:"tr,omitempty"`
	Mixed      *bool `json:"mixed,omitempty"`
	Ice        *bool `json:"ice,omitempty"`
	Snow       *bool `json:"snow,omitempty"`
	Aid        *bool `json:"aid,omitempty"`
}

// Metadata holds the geographic attributes of a route.
type Metadata struct {
	Lat       *float64 `json:"lat,omitempty"`
	Lng       *float64 `json:"lng,omitempty"`
	Elevation *float64 `json:"elevation,omitempty"`
}

// Content holds the free-text attributes of a route.
type Content struct {
	Description *string `json:"description,omitempty"`
	Location    *string `json:"location,omitempty"`
	Protection  *string `json:"protection,omitempty"`
}

// PathToken returns the location-hierarchy token at the given 1-based
// index. Indices beyond the path length report absence, never an error.
func (c *Climb) PathToken(idx int) (string, bool) {
	if idx < 1 || idx > len(c.PathTokens) {
		return "", false
	}
	return c.PathTokens[idx-1], true
}

// Geolocated reports whether the record carries a usable coordinate
// pair. Lat and Lng are only ever consumed together.
func (c *Climb) Geolocated() bool {
	return c.Metadata.Lat != nil && c.Metadata.Lng != nil
}
