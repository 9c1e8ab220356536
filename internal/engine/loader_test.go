package engine

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Rank,Name,Platform,Year,Genre,Publisher,NA_Sales,EU_Sales,JP_Sales,Other_Sales,Global_Sales
1,Wii Sports,Wii,2006,Sports,Nintendo,41.49,29.02,3.77,8.46,82.74
2,Super Mario Bros.,NES,1985,Platform,Nintendo,29.08,3.58,6.81,0.77,40.24
3,"Pokemon Red/Pokemon Blue, Special",GB,1996,Role-Playing,Nintendo,11.27,8.89,10.22,1,31.37
4,Madden NFL 2004,PS2,N/A,Sports,N/A,0,0,0,0,0
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "video_games_sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadCSV(t *testing.T) {
	ds, err := LoadCSV(writeTemp(t, sampleCSV))
	require.NoError(t, err)

	require.Equal(t, 4, ds.Len())

	first := ds.At(0)
	assert.Equal(t, "Wii Sports", first.Name)
	assert.Equal(t, "Wii", first.Platform)
	assert.Equal(t, 2006, first.Year)
	assert.Equal(t, 41.49, first.NASales)
	assert.Equal(t, 82.74, first.GlobalSales)

	assert.Equal(t, "Pokemon Red/Pokemon Blue, Special", ds.At(2).Name)

	missing := ds.At(3)
	assert.Equal(t, 0, missing.Year)
	assert.Equal(t, "", missing.Publisher)
	assert.Equal(t, "Sports", missing.Genre)

	assert.Len(t, ds.Fingerprint(), 16)
	assert.NotEmpty(t, ds.Source())
}

func TestLoadCSV_FingerprintFollowsContent(t *testing.T) {
	a, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	b, err := ReadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	c, err := ReadCSV(strings.NewReader(strings.Replace(sampleCSV, "82.74", "82.75", 1)))
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadCSV_Errors(t *testing.T) {
	header := "name,platform,year,genre,publisher,na_sales,eu_sales,jp_sales,other_sales,global_sales\n"

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "empty file",
			content: "",
			want:    "missing required column",
		},
		{
			name:    "missing column",
			content: "name,platform,year,genre,na_sales,eu_sales,jp_sales,other_sales,global_sales\n",
			want:    "missing required column: publisher",
		},
		{
			name:    "bad sales number",
			content: header + "A,X,2001,Action,EA,1.0,abc,0,0,1\n",
			want:    "line 2: eu_sales: invalid number",
		},
		{
			name:    "negative sales",
			content: header + "A,X,2001,Action,EA,1.0,0,0,0,-1\n",
			want:    "non-negative",
		},
		{
			name:    "bad year",
			content: header + "A,X,20x1,Action,EA,1,0,0,0,1\n",
			want:    "line 2: year: invalid year",
		},
		{
			name:    "short row",
			content: header + "A,X,2001,Action\n",
			want:    "wrong number of fields",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReadCSV_Options(t *testing.T) {
	content := "name;platform;year;genre;publisher;na_sales;eu_sales;jp_sales;other_sales;global_sales\n" +
		"A;X;2006.0;Action;unknown;1;0;0;0;1\n"

	ds, err := ReadCSV(strings.NewReader(content),
		WithDelimiter(';'),
		WithMissingValues("", "unknown"))
	require.NoError(t, err)

	require.Equal(t, 1, ds.Len())
	assert.Equal(t, 2006, ds.At(0).Year)
	assert.Equal(t, "", ds.At(0).Publisher)
}

func TestParseYear(t *testing.T) {
	y, err := parseYear("1999")
	require.NoError(t, err)
	assert.Equal(t, 1999, y)

	y, err = parseYear("2006.0")
	require.NoError(t, err)
	assert.Equal(t, 2006, y)

	_, err = parseYear("2006.5")
	assert.Error(t, err)
}
