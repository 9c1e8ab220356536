package engine

import (
	"sort"
	"strconv"

	apperr "vgsales/internal/errors"
)

// TopNBySalesColumn returns the n records with the largest value of col,
// highest first. Records with equal values keep their dataset order.
func TopNBySalesColumn(ds *Dataset, col SalesColumn, n int) ([]SalesRecord, error) {
	if !col.Valid() {
		return nil, apperr.InvalidArgumentf("unknown sales column %q", col)
	}
	if n <= 0 || ds.Len() == 0 {
		return []SalesRecord{}, nil
	}

	order := make([]int, ds.Len())
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return col.Value(&ds.records[order[a]]) > col.Value(&ds.records[order[b]])
	})

	if n > len(order) {
		n = len(order)
	}
	out := make([]SalesRecord, n)
	for i := 0; i < n; i++ {
		out[i] = ds.records[order[i]]
	}
	return out, nil
}

// PercentageOfRegionTotal returns value as a percentage of regionTotal.
func PercentageOfRegionTotal(value, regionTotal float64) (float64, error) {
	if regionTotal == 0 {
		return 0, apperr.DivisionByZero("region total is zero")
	}
	return value / regionTotal * 100, nil
}

// GroupRow is one category value with its sums, aligned with GroupedTable.Columns.
type GroupRow struct {
	Key   string
	Count int
	Sums  []float64
}

// Total returns the sum across all of the row's columns.
func (r GroupRow) Total() float64 {
	var t float64
	for _, v := range r.Sums {
		t += v
	}
	return t
}

// GroupedTable maps category values to summed sales columns.
type GroupedTable struct {
	Category Category
	Columns  []SalesColumn
	Groups   map[string]*GroupRow
}

// Len returns the number of distinct category values.
func (t *GroupedTable) Len() int { return len(t.Groups) }

// Sum returns the summed value of col for key.
func (t *GroupedTable) Sum(key string, col SalesColumn) (float64, bool) {
	g, ok := t.Groups[key]
	if !ok {
		return 0, false
	}
	for i, c := range t.Columns {
		if c == col {
			return g.Sums[i], true
		}
	}
	return 0, false
}

// Total returns the sum of col over every group.
func (t *GroupedTable) Total(col SalesColumn) float64 {
	var total float64
	for key := range t.Groups {
		v, _ := t.Sum(key, col)
		total += v
	}
	return total
}

// Rows returns the groups ordered by key. Years sort numerically.
func (t *GroupedTable) Rows() []GroupRow {
	rows := make([]GroupRow, 0, len(t.Groups))
	for _, g := range t.Groups {
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		return keyLess(t.Category, rows[i].Key, rows[j].Key)
	})
	return rows
}

// Select returns the rows for keys in the given order. Absent keys are skipped.
func (t *GroupedTable) Select(keys []string) []GroupRow {
	rows := make([]GroupRow, 0, len(keys))
	for _, k := range keys {
		if g, ok := t.Groups[k]; ok {
			rows = append(rows, *g)
		}
	}
	return rows
}

func keyLess(c Category, a, b string) bool {
	if c == ByYear {
		ya, errA := strconv.Atoi(a)
		yb, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return ya < yb
		}
	}
	return a < b
}

// SumByCategory sums the requested sales columns per distinct value of cat.
// Records missing a value for cat are left out.
func SumByCategory(ds *Dataset, cat Category, cols ...SalesColumn) (*GroupedTable, error) {
	if !cat.Valid() {
		return nil, apperr.InvalidArgumentf("unknown category %q", cat)
	}
	for _, c := range cols {
		if !c.Valid() {
			return nil, apperr.InvalidArgumentf("unknown sales column %q", c)
		}
	}

	table := &GroupedTable{
		Category: cat,
		Columns:  append([]SalesColumn(nil), cols...),
		Groups:   make(map[string]*GroupRow),
	}
	ds.Each(func(_ int, r *SalesRecord) {
		key, ok := cat.Key(r)
		if !ok {
			return
		}
		g, exists := table.Groups[key]
		if !exists {
			g = &GroupRow{Key: key, Sums: make([]float64, len(cols))}
			table.Groups[key] = g
		}
		g.Count++
		for i, c := range cols {
			g.Sums[i] += c.Value(r)
		}
	})
	return table, nil
}

// CategoryCount is a category value with its number of records.
type CategoryCount struct {
	Key   string
	Count int
}

// TopKCategoriesByFrequency returns the k category values with the most records.
// Equal counts keep the order in which the values first appear.
func TopKCategoriesByFrequency(ds *Dataset, cat Category, k int) ([]CategoryCount, error) {
	if !cat.Valid() {
		return nil, apperr.InvalidArgumentf("unknown category %q", cat)
	}

	counts := make([]CategoryCount, 0)
	pos := make(map[string]int)
	ds.Each(func(_ int, r *SalesRecord) {
		key, ok := cat.Key(r)
		if !ok {
			return
		}
		i, seen := pos[key]
		if !seen {
			i = len(counts)
			pos[key] = i
			counts = append(counts, CategoryCount{Key: key})
		}
		counts[i].Count++
	})

	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	if k < 0 {
		k = 0
	}
	if k < len(counts) {
		counts = counts[:k]
	}
	return counts, nil
}

// TopKCategoriesBySum returns the k groups with the largest summed value,
// highest first. Ties are ordered by key.
func TopKCategoriesBySum(t *GroupedTable, k int) []GroupRow {
	if t == nil || k <= 0 {
		return []GroupRow{}
	}
	rows := t.Rows()
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Total() > rows[j].Total() })
	if k < len(rows) {
		rows = rows[:k]
	}
	return rows
}
