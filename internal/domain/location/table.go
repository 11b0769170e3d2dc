package location

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseTable decodes and validates a YAML correction table.
func ParseTable(data []byte) (Table, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	table := Table{}
	if err := dec.Decode(&table); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTable, err)
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadTable reads a correction table from path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading location table: %w", err)
	}
	table, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Validate checks every entry of the table.
func (t Table) Validate() error {
	var errs []error
	for name, c := range t {
		if err := validateEntry(name, c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func validateEntry(name string, c Correction) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	}
	if (c.Lat == nil) != (c.Lng == nil) {
		return fmt.Errorf("%w: %q: lat and lng must be given together", ErrInvalidEntry, name)
	}
	if p, ok := c.Point(); ok {
		if err := p.validate(); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrInvalidEntry, name, err)
		}
	} else if c.City == "" && c.County == "" {
		return fmt.Errorf("%w: %q: nothing to correct", ErrInvalidEntry, name)
	}
	return nil
}

func (p Point) validate() error {
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %g out of range", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %g out of range", p.Lng)
	}
	return nil
}
