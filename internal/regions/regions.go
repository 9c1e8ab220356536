// Package regions holds the reference table behind the region panels: the
// denominators used for percentage-of-region figures, the labels drawn on the
// world map, and the country to region assignment used to colour it.
package regions

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-json"

	"vgsales/internal/engine"
	apperr "vgsales/internal/errors"
)

// Entry describes one region.
type Entry struct {
	Region engine.Region `json:"region"`
	// Total is the denominator for percentage-of-region figures.
	Total float64 `json:"total"`
	// MapSales is the figure printed on the map label.
	MapSales float64 `json:"map_sales"`
	// Coordinates is the label position as [lon, lat].
	Coordinates [2]float64 `json:"coordinates"`
	Color       string     `json:"color,omitempty"`
}

// Table is the region reference table. It is read-only once built.
type Table struct {
	Entries   []Entry                  `json:"regions"`
	Countries map[string]engine.Region `json:"countries"`

	byRegion map[engine.Region]int
}

// New validates entries and countries and builds a table.
func New(entries []Entry, countries map[string]engine.Region) (*Table, error) {
	t := &Table{Entries: entries, Countries: countries}
	if err := t.init(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Table) init() error {
	t.byRegion = make(map[engine.Region]int, len(t.Entries))
	var problems []string
	for i, e := range t.Entries {
		if _, err := engine.ParseRegion(string(e.Region)); err != nil {
			problems = append(problems, err.Error())
			continue
		}
		if _, dup := t.byRegion[e.Region]; dup {
			problems = append(problems, fmt.Sprintf("duplicate region %q", e.Region))
			continue
		}
		if e.Total < 0 || e.MapSales < 0 {
			problems = append(problems, fmt.Sprintf("region %q: totals must not be negative", e.Region))
		}
		t.byRegion[e.Region] = i
	}
	for country, r := range t.Countries {
		if r == engine.Global {
			problems = append(problems, fmt.Sprintf("country %q: cannot be assigned to Global", country))
			continue
		}
		if _, err := engine.ParseRegion(string(r)); err != nil {
			problems = append(problems, fmt.Sprintf("country %q: %v", country, err))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid region table:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// LoadFile reads a table from a JSON file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read region table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode region table %s: %w", path, err)
	}
	if err := t.init(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Entry returns the entry for r.
func (t *Table) Entry(r engine.Region) (Entry, bool) {
	i, ok := t.byRegion[r]
	if !ok {
		return Entry{}, false
	}
	return t.Entries[i], true
}

// Total returns the percentage denominator for r.
func (t *Table) Total(r engine.Region) (float64, error) {
	e, ok := t.Entry(r)
	if !ok {
		return 0, apperr.InvalidArgumentf("region %q is not configured", r)
	}
	return e.Total, nil
}

// RegionOf returns the region a country is drawn in. Unlisted countries are Other.
func (t *Table) RegionOf(country string) engine.Region {
	if r, ok := t.Countries[country]; ok {
		return r
	}
	return engine.Other
}

// MapEntries returns the entries labelled on the map, i.e. all but Global.
func (t *Table) MapEntries() []Entry {
	out := make([]Entry, 0, len(t.Entries))
	for _, e := range t.Entries {
		if e.Region != engine.Global {
			out = append(out, e)
		}
	}
	return out
}
