package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperr "vgsales/internal/errors"
)

func sampleDataset() *Dataset {
	// Scenario:
	// A: X, Sports, 2006, Nintendo, global 5
	// B: Y, Racing, 2008, Sony, global 3
	// C: X, Sports, 2006, Nintendo, global 2
	return NewDataset([]SalesRecord{
		{Name: "A", Platform: "X", Year: 2006, Genre: "Sports", Publisher: "Nintendo",
			NASales: 3, EUSales: 1, JPSales: 0.5, OtherSales: 0.5, GlobalSales: 5},
		{Name: "B", Platform: "Y", Year: 2008, Genre: "Racing", Publisher: "Sony",
			NASales: 1, EUSales: 1.5, JPSales: 0.25, OtherSales: 0.25, GlobalSales: 3},
		{Name: "C", Platform: "X", Year: 2006, Genre: "Sports", Publisher: "Nintendo",
			NASales: 0.5, EUSales: 0.5, JPSales: 1, OtherSales: 0, GlobalSales: 2},
	})
}

func names(records []SalesRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestTopNBySalesColumn(t *testing.T) {
	ds := sampleDataset()

	top, err := TopNBySalesColumn(ds, GlobalSales, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(top))
	assert.Equal(t, 5.0, top[0].GlobalSales)
	assert.Equal(t, 3.0, top[1].GlobalSales)
}

func TestTopNBySalesColumn_SortedForEveryColumn(t *testing.T) {
	ds := sampleDataset()

	for _, col := range SalesColumns {
		t.Run(string(col), func(t *testing.T) {
			for n := 0; n <= ds.Len()+2; n++ {
				top, err := TopNBySalesColumn(ds, col, n)
				require.NoError(t, err)
				assert.Len(t, top, min(n, ds.Len()))
				for i := 1; i < len(top); i++ {
					assert.GreaterOrEqual(t, col.Value(&top[i-1]), col.Value(&top[i]))
				}
			}
		})
	}
}

func TestTopNBySalesColumn_TiesKeepDatasetOrder(t *testing.T) {
	ds := NewDataset([]SalesRecord{
		{Name: "first", GlobalSales: 1},
		{Name: "big", GlobalSales: 9},
		{Name: "second", GlobalSales: 1},
		{Name: "third", GlobalSales: 1},
	})

	top, err := TopNBySalesColumn(ds, GlobalSales, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"big", "first", "second"}, names(top))
}

func TestTopNBySalesColumn_Deterministic(t *testing.T) {
	ds := sampleDataset()

	first, err := TopNBySalesColumn(ds, JPSales, 3)
	require.NoError(t, err)
	second, err := TopNBySalesColumn(ds, JPSales, 3)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTopNBySalesColumn_UnknownColumn(t *testing.T) {
	_, err := TopNBySalesColumn(sampleDataset(), SalesColumn("rank"), 3)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestTopNBySalesColumn_EmptyDataset(t *testing.T) {
	top, err := TopNBySalesColumn(NewDataset(nil), GlobalSales, 3)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestPercentageOfRegionTotal(t *testing.T) {
	pct, err := PercentageOfRegionTotal(50, 200)
	require.NoError(t, err)
	assert.Equal(t, 25.0, pct)

	_, err = PercentageOfRegionTotal(10, 0)
	assert.ErrorIs(t, err, apperr.ErrDivisionByZero)
}

func TestSumByCategory(t *testing.T) {
	table, err := SumByCategory(sampleDataset(), ByPlatform, GlobalSales)
	require.NoError(t, err)

	require.Equal(t, 2, table.Len())
	x, ok := table.Sum("X", GlobalSales)
	require.True(t, ok)
	assert.Equal(t, 7.0, x)
	y, ok := table.Sum("Y", GlobalSales)
	require.True(t, ok)
	assert.Equal(t, 3.0, y)
	assert.Equal(t, 2, table.Groups["X"].Count)
}

func TestSumByCategory_ConservesGlobalSales(t *testing.T) {
	ds := sampleDataset()
	var want float64
	ds.Each(func(_ int, r *SalesRecord) { want += r.GlobalSales })

	for _, cat := range Categories {
		t.Run(string(cat), func(t *testing.T) {
			table, err := SumByCategory(ds, cat, GlobalSales)
			require.NoError(t, err)
			assert.InDelta(t, want, table.Total(GlobalSales), 1e-9)
		})
	}
}

func TestSumByCategory_MultipleColumns(t *testing.T) {
	table, err := SumByCategory(sampleDataset(), ByGenre, RegionalColumns...)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "Racing", rows[0].Key)
	assert.Equal(t, []float64{1, 1.5, 0.25, 0.25}, rows[0].Sums)
	assert.Equal(t, "Sports", rows[1].Key)
	assert.Equal(t, []float64{3.5, 1.5, 1.5, 0.5}, rows[1].Sums)
}

func TestSumByCategory_SkipsMissingKeys(t *testing.T) {
	ds := NewDataset([]SalesRecord{
		{Name: "dated", Year: 2001, Publisher: "", GlobalSales: 1},
		{Name: "undated", Year: 0, Publisher: "Sega", GlobalSales: 2},
	})

	byYear, err := SumByCategory(ds, ByYear, GlobalSales)
	require.NoError(t, err)
	assert.Equal(t, 1, byYear.Len())

	byPublisher, err := SumByCategory(ds, ByPublisher, GlobalSales)
	require.NoError(t, err)
	assert.Equal(t, 1, byPublisher.Len())
	assert.Contains(t, byPublisher.Groups, "Sega")
}

func TestSumByCategory_YearRowsSortNumerically(t *testing.T) {
	ds := NewDataset([]SalesRecord{
		{Year: 2010, GlobalSales: 1},
		{Year: 985, GlobalSales: 1},
		{Year: 1999, GlobalSales: 1},
	})

	table, err := SumByCategory(ds, ByYear, GlobalSales)
	require.NoError(t, err)

	var keys []string
	for _, r := range table.Rows() {
		keys = append(keys, r.Key)
	}
	assert.Equal(t, []string{"985", "1999", "2010"}, keys)
}

func TestSumByCategory_InvalidArguments(t *testing.T) {
	_, err := SumByCategory(sampleDataset(), Category("rating"), GlobalSales)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = SumByCategory(sampleDataset(), ByGenre, SalesColumn("rank"))
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestEmptyDataset(t *testing.T) {
	ds := NewDataset(nil)

	table, err := SumByCategory(ds, ByPlatform, GlobalSales)
	require.NoError(t, err)
	assert.Equal(t, 0, table.Len())
	assert.Empty(t, table.Rows())

	counts, err := TopKCategoriesByFrequency(ds, ByPublisher, 15)
	require.NoError(t, err)
	assert.Empty(t, counts)

	assert.Empty(t, TopKCategoriesBySum(table, 6))
}

func TestTopKCategoriesByFrequency(t *testing.T) {
	ds := NewDataset([]SalesRecord{
		{Publisher: "Sony"},
		{Publisher: "EA"},
		{Publisher: "EA"},
		{Publisher: "Sega"},
		{Publisher: "Sega"},
		{Publisher: ""},
		{Publisher: "Ubisoft"},
	})

	counts, err := TopKCategoriesByFrequency(ds, ByPublisher, 3)
	require.NoError(t, err)
	assert.Equal(t, []CategoryCount{
		{Key: "EA", Count: 2},
		{Key: "Sega", Count: 2},
		{Key: "Sony", Count: 1},
	}, counts)

	all, err := TopKCategoriesByFrequency(ds, ByPublisher, 100)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTopKCategoriesBySum(t *testing.T) {
	ds := NewDataset([]SalesRecord{
		{Platform: "Wii", GlobalSales: 4},
		{Platform: "PS2", GlobalSales: 10},
		{Platform: "DS", GlobalSales: 4},
		{Platform: "Wii", GlobalSales: 2},
		{Platform: "GB", GlobalSales: 1},
	})
	table, err := SumByCategory(ds, ByPlatform, GlobalSales)
	require.NoError(t, err)

	top := TopKCategoriesBySum(table, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "PS2", top[0].Key)
	assert.Equal(t, "Wii", top[1].Key)
	assert.Equal(t, 6.0, top[1].Total())
	assert.Equal(t, "DS", top[2].Key)

	assert.Len(t, TopKCategoriesBySum(table, 10), 4)
}

func TestGroupedTable_Select(t *testing.T) {
	table, err := SumByCategory(sampleDataset(), ByPublisher, GlobalSales)
	require.NoError(t, err)

	rows := table.Select([]string{"Sony", "Missing", "Nintendo"})
	require.Len(t, rows, 2)
	assert.Equal(t, "Sony", rows[0].Key)
	assert.Equal(t, "Nintendo", rows[1].Key)
	assert.Equal(t, []float64{7}, rows[1].Sums)
}

func TestParseEnumerations(t *testing.T) {
	r, err := ParseRegion("Japan")
	require.NoError(t, err)
	assert.Equal(t, JPSales, r.SalesColumn())
	assert.Equal(t, GlobalSales, Global.SalesColumn())

	_, err = ParseRegion("Mars")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	c, err := ParseCategory("Publisher")
	require.NoError(t, err)
	assert.Equal(t, ByPublisher, c)

	_, err = ParseCategory("rating")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	col, err := ParseSalesColumn("EU_Sales")
	require.NoError(t, err)
	assert.Equal(t, EUSales, col)
}
