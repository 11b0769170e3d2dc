package location

import (
	"embed"
	"fmt"
)

//go:embed seeds/*.yaml
var seeds embed.FS

// DefaultVerified returns the built-in table of hand-checked fixes.
func DefaultVerified() (Table, error) {
	return seedTable("seeds/verified.yaml")
}

// DefaultPlaces returns the built-in name-keyed coordinate table.
func DefaultPlaces() (Table, error) {
	return seedTable("seeds/places.yaml")
}

// DefaultGazetteer returns the built-in gazetteer backed by the default places.
func DefaultGazetteer() (*Gazetteer, error) {
	places, err := DefaultPlaces()
	if err != nil {
		return nil, err
	}
	return DefaultGazetteerWith(places)
}

// DefaultGazetteerWith returns the built-in gazetteer backed by places.
func DefaultGazetteerWith(places Table) (*Gazetteer, error) {
	data, err := seeds.ReadFile("seeds/gazetteer.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading gazetteer seed: %w", err)
	}
	return ParseGazetteer(data, places)
}

func seedTable(name string) (Table, error) {
	data, err := seeds.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading seed %s: %w", name, err)
	}
	return ParseTable(data)
}
