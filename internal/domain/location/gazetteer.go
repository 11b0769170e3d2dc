package location

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source names the rule that produced a resolved location.
type Source string

const (
	SourcePlace   Source = "place"
	SourceCity    Source = "city"
	SourceArea    Source = "area"
	SourceDefault Source = "default"
)

// City is a named point searched for inside organization and area names.
type City struct {
	Name  string `yaml:"name"`
	Point `yaml:",inline"`
}

// Gazetteer geocodes raw records that carry no coordinates of their own.
type Gazetteer struct {
	places   Table
	cities   []City
	areas    map[string]Point
	fallback Point
}

type gazetteerFile struct {
	Default Point            `yaml:"default"`
	Cities  []City           `yaml:"cities"`
	Areas   map[string]Point `yaml:"areas"`
}

// Resolution is the outcome of a lookup.
type Resolution struct {
	Point
	City   string
	Source Source
}

// NewGazetteer builds a gazetteer. Cities are tried in the given order.
func NewGazetteer(places Table, cities []City, areas map[string]Point, fallback Point) *Gazetteer {
	return &Gazetteer{places: places, cities: cities, areas: areas, fallback: fallback}
}

// ParseGazetteer decodes the YAML city and area tables.
func ParseGazetteer(data []byte, places Table) (*Gazetteer, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f gazetteerFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := f.Default.validate(); err != nil {
		return nil, fmt.Errorf("%w: default: %v", ErrInvalidEntry, err)
	}
	for _, c := range f.Cities {
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: city without a name", ErrInvalidEntry)
		}
		if err := c.validate(); err != nil {
			return nil, fmt.Errorf("%w: city %q: %v", ErrInvalidEntry, c.Name, err)
		}
	}
	for name, p := range f.Areas {
		if err := p.validate(); err != nil {
			return nil, fmt.Errorf("%w: area %q: %v", ErrInvalidEntry, name, err)
		}
	}
	return NewGazetteer(places, f.Cities, f.Areas, f.Default), nil
}

// Resolve locates an organization from its name and service area. It tries the
// name-keyed place table, then a known city mentioned in the name or service
// area, then the service area's centroid, and finally the default point.
func (g *Gazetteer) Resolve(name, serviceArea string) Resolution {
	if c, ok := g.places[name]; ok {
		if p, ok := c.Point(); ok {
			return Resolution{Point: p, City: c.City, Source: SourcePlace}
		}
	}

	lowerName := strings.ToLower(name)
	lowerArea := strings.ToLower(serviceArea)
	for _, c := range g.cities {
		city := strings.ToLower(c.Name)
		if strings.Contains(lowerName, city) || strings.Contains(lowerArea, city) {
			return Resolution{Point: c.Point, City: c.Name, Source: SourceCity}
		}
	}

	if p, ok := g.areas[strings.TrimSpace(serviceArea)]; ok {
		return Resolution{Point: p, Source: SourceArea}
	}
	return Resolution{Point: g.fallback, Source: SourceDefault}
}
