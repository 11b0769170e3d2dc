package location

// Point is a coordinate pair.
type Point struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lng float64 `yaml:"lng" json:"lng"`
}

// Correction overwrites the location of one named organization. Empty or nil
// fields are left as they are.
type Correction struct {
	City   string   `yaml:"city,omitempty" json:"city,omitempty"`
	County string   `yaml:"county,omitempty" json:"county,omitempty"`
	Lat    *float64 `yaml:"lat,omitempty" json:"lat,omitempty"`
	Lng    *float64 `yaml:"lng,omitempty" json:"lng,omitempty"`
	Reason string   `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// Point returns the correction's coordinates when both are set.
func (c Correction) Point() (Point, bool) {
	if c.Lat == nil || c.Lng == nil {
		return Point{}, false
	}
	return Point{Lat: *c.Lat, Lng: *c.Lng}, true
}

// Table maps exact organization names to corrections.
type Table map[string]Correction

// Place is the location part of a dataset entry.
type Place struct {
	City   string   `json:"city,omitempty"`
	County string   `json:"county"`
	Lat    *float64 `json:"lat,omitempty"`
	Lng    *float64 `json:"lng,omitempty"`
}

// Change records one corrected entry.
type Change struct {
	Name   string `json:"name"`
	Reason string `json:"reason,omitempty"`
	Before Place  `json:"before"`
	After  Place  `json:"after"`
}
