package engine

import (
	"fmt"
	"strconv"
	"time"
)

// SalesRecord is one game's row. Sales are in millions of units.
type SalesRecord struct {
	Name      string
	Platform  string
	Year      int // 0 when the source had no year
	Genre     string
	Publisher string

	NASales     float64
	EUSales     float64
	JPSales     float64
	OtherSales  float64
	GlobalSales float64
}

// YearKey returns the year as a grouping key, or false when the year is missing.
func (r *SalesRecord) YearKey() (string, bool) {
	if r.Year == 0 {
		return "", false
	}
	return strconv.Itoa(r.Year), true
}

// Dataset holds the loaded records. It is never mutated after construction,
// so one instance may be shared by any number of concurrent readers.
type Dataset struct {
	records     []SalesRecord
	fingerprint uint64
	source      string
	loadedAt    time.Time
}

// NewDataset builds a dataset from records. The slice is copied.
func NewDataset(records []SalesRecord) *Dataset {
	cp := make([]SalesRecord, len(records))
	copy(cp, records)
	return &Dataset{records: cp, loadedAt: time.Now()}
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// At returns the i-th record in load order.
func (d *Dataset) At(i int) SalesRecord {
	return d.records[i]
}

// Each calls fn for every record in load order. fn must not retain the pointer.
func (d *Dataset) Each(fn func(i int, r *SalesRecord)) {
	if d == nil {
		return
	}
	for i := range d.records {
		fn(i, &d.records[i])
	}
}

// Fingerprint identifies the source bytes the dataset was loaded from.
func (d *Dataset) Fingerprint() string {
	return fmt.Sprintf("%016x", d.fingerprint)
}

// Source returns the path the dataset was loaded from, if any.
func (d *Dataset) Source() string { return d.source }

// LoadedAt returns the construction time.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }
