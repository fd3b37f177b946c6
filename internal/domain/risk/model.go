package risk

// Record sources.
const (
	SourceDatabase = "SafeLand Risk Database"
	SourceDynamic  = "SafeLand Dynamic Assessment"
)

// Risk scale bounds.
const (
	MinScore = 0.0
	MaxScore = 5.0
)

// Coordinates locates a curated city.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Record is the risk snapshot for one location.
type Record struct {
	FloodRisk     float64      `json:"floodRisk"`
	LandslideRisk float64      `json:"landslideRisk"`
	Description   string       `json:"description"`
	Source        string       `json:"source"`
	Coordinates   *Coordinates `json:"coordinates,omitempty"`
	LastUpdated   string       `json:"lastUpdated,omitempty"`
}

// Table maps lowercased location names to curated records.
type Table map[string]Record

// Assessment is the public risk payload.
type Assessment struct {
	Location       string       `json:"location"`
	FloodRisk      float64      `json:"floodRisk"`
	LandslideRisk  float64      `json:"landslideRisk"`
	FloodLevel     string       `json:"floodLevel"`
	LandslideLevel string       `json:"landslideLevel"`
	Description    string       `json:"description"`
	Source         string       `json:"source"`
	Coordinates    *Coordinates `json:"coordinates,omitempty"`
	LastUpdated    string       `json:"lastUpdated,omitempty"`
	Timestamp      string       `json:"timestamp"`
}
