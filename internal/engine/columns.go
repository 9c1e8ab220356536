package engine

import (
	"strings"

	apperr "vgsales/internal/errors"
)

// SalesColumn names one of the five sales figures of a record.
type SalesColumn string

const (
	NASales     SalesColumn = "na_sales"
	EUSales     SalesColumn = "eu_sales"
	JPSales     SalesColumn = "jp_sales"
	OtherSales  SalesColumn = "other_sales"
	GlobalSales SalesColumn = "global_sales"
)

// SalesColumns lists every sales column in file order.
var SalesColumns = []SalesColumn{NASales, EUSales, JPSales, OtherSales, GlobalSales}

// RegionalColumns are the four per-region columns, without the global total.
var RegionalColumns = []SalesColumn{NASales, EUSales, JPSales, OtherSales}

// ParseSalesColumn validates a sales column name.
func ParseSalesColumn(s string) (SalesColumn, error) {
	c := SalesColumn(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", apperr.InvalidArgumentf("unknown sales column %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the five sales columns.
func (c SalesColumn) Valid() bool {
	switch c {
	case NASales, EUSales, JPSales, OtherSales, GlobalSales:
		return true
	}
	return false
}

// Value returns the record's figure for c. Callers must pass a valid column.
func (c SalesColumn) Value(r *SalesRecord) float64 {
	switch c {
	case NASales:
		return r.NASales
	case EUSales:
		return r.EUSales
	case JPSales:
		return r.JPSales
	case OtherSales:
		return r.OtherSales
	case GlobalSales:
		return r.GlobalSales
	}
	return 0
}

// Region is a geographic grouping used for sales reporting.
type Region string

const (
	Global       Region = "Global"
	NorthAmerica Region = "North America"
	Europe       Region = "Europe"
	Japan        Region = "Japan"
	Other        Region = "Other"
)

// Regions lists the selectable regions in dropdown order.
var Regions = []Region{Global, NorthAmerica, Europe, Japan, Other}

// ParseRegion validates a region name.
func ParseRegion(s string) (Region, error) {
	for _, r := range Regions {
		if string(r) == s {
			return r, nil
		}
	}
	return "", apperr.InvalidArgumentf("unknown region %q", s)
}

// SalesColumn maps the region to the column holding its figures.
func (r Region) SalesColumn() SalesColumn {
	switch r {
	case NorthAmerica:
		return NASales
	case Europe:
		return EUSales
	case Japan:
		return JPSales
	case Other:
		return OtherSales
	default:
		return GlobalSales
	}
}

// Category is a grouping dimension over which sales are summed.
type Category string

const (
	ByYear      Category = "year"
	ByPlatform  Category = "platform"
	ByGenre     Category = "genre"
	ByPublisher Category = "publisher"
)

// Categories lists the selectable categories in dropdown order.
var Categories = []Category{ByYear, ByPlatform, ByGenre, ByPublisher}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", apperr.InvalidArgumentf("unknown category %q", s)
	}
	return c, nil
}

// Valid reports whether c is one of the four categories.
func (c Category) Valid() bool {
	switch c {
	case ByYear, ByPlatform, ByGenre, ByPublisher:
		return true
	}
	return false
}

// Key returns the record's value for c and whether it is present.
func (c Category) Key(r *SalesRecord) (string, bool) {
	switch c {
	case ByYear:
		return r.YearKey()
	case ByPlatform:
		return r.Platform, r.Platform != ""
	case ByGenre:
		return r.Genre, r.Genre != ""
	case ByPublisher:
		return r.Publisher, r.Publisher != ""
	}
	return "", false
}
