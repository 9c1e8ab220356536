package models

// Overview bundles every dashboard panel for one region/category selection.
type Overview struct {
	Region        string        `json:"region"`
	Category      string        `json:"category"`
	TopGames      []TopGame     `json:"top_games"`
	RegionMap     RegionMap     `json:"region_map"`
	GenreSales    []RankedItem  `json:"genre_sales"`
	CategorySales CategorySales `json:"category_sales"`
	TopPlatforms  []RankedItem  `json:"top_platforms"`
}

// TopGame is one donut on the top games panel. Percentage is nil when the
// region's total is zero.
type TopGame struct {
	Rank       int      `json:"rank"`
	Name       string   `json:"name"`
	Platform   string   `json:"platform"`
	Sales      float64  `json:"sales"`
	Percentage *float64 `json:"percentage"`
	Label      string   `json:"label"`
}

// RegionLabel is a sales label drawn on the world map.
type RegionLabel struct {
	Region      string     `json:"region"`
	Sales       float64    `json:"sales"`
	Coordinates [2]float64 `json:"coordinates"`
	Color       string     `json:"color,omitempty"`
}

// RegionMap is the choropleth panel: labels plus the colouring of each country.
type RegionMap struct {
	Labels    []RegionLabel     `json:"labels"`
	Countries map[string]string `json:"countries"`
	Default   string            `json:"default_region"`
}

// RankedItem is a named value in a ranked chart.
type RankedItem struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Share float64 `json:"share,omitempty"`
}

// CategoryRow holds one category value's sales per region column.
type CategoryRow struct {
	Key   string             `json:"key"`
	Sales map[string]float64 `json:"sales"`
}

// CategorySales is the grouped bar panel.
type CategorySales struct {
	Category string        `json:"category"`
	Series   []string      `json:"series"`
	Rows     []CategoryRow `json:"rows"`
}

// Page wraps a paginated slice.
type Page[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
