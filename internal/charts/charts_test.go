package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vgsales/internal/models"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestTopGameDonut(t *testing.T) {
	pct := 9.27
	var buf bytes.Buffer

	err := TopGameDonut(&buf, models.TopGame{Rank: 1, Name: "Wii Sports", Sales: 82.74, Percentage: &pct, Label: "9.3%"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestTopGameDonut_WithoutPercentage(t *testing.T) {
	var buf bytes.Buffer

	err := TopGameDonut(&buf, models.TopGame{Rank: 1, Name: "Wii Sports", Label: "—"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestGenreBar(t *testing.T) {
	var buf bytes.Buffer

	err := GenreBar(&buf, []models.RankedItem{
		{Name: "Action", Value: 1751.18},
		{Name: "Sports", Value: 1330.93},
		{Name: "Puzzle", Value: 244.95},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestPlatformPie(t *testing.T) {
	var buf bytes.Buffer

	err := PlatformPie(&buf, []models.RankedItem{
		{Name: "PS2", Value: 1255.64},
		{Name: "X360", Value: 979.96},
		{Name: "PS3", Value: 957.84},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestCategoryStackedBar(t *testing.T) {
	var buf bytes.Buffer

	err := CategoryStackedBar(&buf, models.CategorySales{
		Category: "genre",
		Series:   []string{"na_sales", "eu_sales", "jp_sales", "other_sales"},
		Rows: []models.CategoryRow{
			{Key: "Action", Sales: map[string]float64{"na_sales": 877.83, "eu_sales": 525, "jp_sales": 159.95, "other_sales": 187.38}},
			{Key: "Puzzle", Sales: map[string]float64{"na_sales": 123.78, "eu_sales": 50.78, "jp_sales": 57.31, "other_sales": 12.55}},
		},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestRenderers_NoData(t *testing.T) {
	var buf bytes.Buffer

	assert.ErrorIs(t, GenreBar(&buf, nil), ErrNoData)
	assert.ErrorIs(t, GenreBar(&buf, []models.RankedItem{{Name: "Action", Value: 0}}), ErrNoData)
	assert.ErrorIs(t, PlatformPie(&buf, nil), ErrNoData)
	assert.ErrorIs(t, CategoryStackedBar(&buf, models.CategorySales{Category: "year"}), ErrNoData)
	assert.Zero(t, buf.Len())
}

func TestBarWidth(t *testing.T) {
	assert.Equal(t, 60, barWidth(1, 900))
	assert.Equal(t, 37, barWidth(12, 900))
	assert.Equal(t, 8, barWidth(200, 900))
}
