package engine

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zeebo/xxh3"
)

// Required header names, matched case-insensitively.
const (
	colName      = "name"
	colPlatform  = "platform"
	colYear      = "year"
	colGenre     = "genre"
	colPublisher = "publisher"
)

var requiredColumns = []string{
	colName, colPlatform, colYear, colGenre, colPublisher,
	string(NASales), string(EUSales), string(JPSales), string(OtherSales), string(GlobalSales),
}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// LoadConfig tunes how the CSV is read.
type LoadConfig struct {
	Delimiter     rune
	MissingValues []string
	Logger        *slog.Logger
}

// LoadOption configures LoadCSV and ReadCSV.
type LoadOption func(*LoadConfig)

// WithDelimiter sets the field delimiter (default ',').
func WithDelimiter(d rune) LoadOption {
	return func(c *LoadConfig) { c.Delimiter = d }
}

// WithMissingValues replaces the tokens treated as missing year or category values.
func WithMissingValues(tokens ...string) LoadOption {
	return func(c *LoadConfig) { c.MissingValues = tokens }
}

// WithLogger sets the logger used for load progress.
func WithLogger(l *slog.Logger) LoadOption {
	return func(c *LoadConfig) { c.Logger = l }
}

func defaultLoadConfig() *LoadConfig {
	return &LoadConfig{
		Delimiter:     ',',
		MissingValues: []string{"", "N/A", "NA", "NaN", "null"},
		Logger:        slog.Default(),
	}
}

// LoadCSV reads the dataset file at path. Any problem with the file is returned
// as an error; the caller is expected to treat it as fatal.
func LoadCSV(path string, opts ...LoadOption) (*Dataset, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	start := time.Now()
	cfg.Logger.Info("loading dataset", "path", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := parse(bytes.NewReader(content), cfg)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	ds.fingerprint = xxh3.Hash(content)
	ds.source = path

	cfg.Logger.Info("dataset loaded",
		"path", path,
		"rows", ds.Len(),
		"fingerprint", ds.Fingerprint(),
		"duration", time.Since(start))
	return ds, nil
}

// ReadCSV parses a dataset from r. The fingerprint covers the bytes read.
func ReadCSV(r io.Reader, opts ...LoadOption) (*Dataset, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	ds, err := parse(bytes.NewReader(content), cfg)
	if err != nil {
		return nil, err
	}
	ds.fingerprint = xxh3.Hash(content)
	return ds, nil
}

func parse(r io.Reader, cfg *LoadConfig) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.Comma = cfg.Delimiter
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	missing := make(map[string]struct{}, len(cfg.MissingValues))
	for _, tok := range cfg.MissingValues {
		missing[tok] = struct{}{}
	}
	category := func(s string) string {
		s = strings.TrimSpace(s)
		if _, ok := missing[s]; ok {
			return ""
		}
		return s
	}

	var records []SalesRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)

		rec := SalesRecord{
			Name:      strings.TrimSpace(row[idx[colName]]),
			Platform:  category(row[idx[colPlatform]]),
			Genre:     category(row[idx[colGenre]]),
			Publisher: category(row[idx[colPublisher]]),
		}

		if y := category(row[idx[colYear]]); y != "" {
			year, err := parseYear(y)
			if err != nil {
				return nil, fmt.Errorf("line %d: year: %w", line, err)
			}
			rec.Year = year
		}

		for _, col := range SalesColumns {
			v, err := parseSales(row[idx[string(col)]])
			if err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", line, col, err)
			}
			switch col {
			case NASales:
				rec.NASales = v
			case EUSales:
				rec.EUSales = v
			case JPSales:
				rec.JPSales = v
			case OtherSales:
				rec.OtherSales = v
			case GlobalSales:
				rec.GlobalSales = v
			}
		}

		records = append(records, rec)
	}

	return &Dataset{records: records, loadedAt: time.Now()}, nil
}

// indexHeader maps each required column to its position.
func indexHeader(header []string) (map[string]int, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	idx := make(map[string]int, len(requiredColumns))
	var absent []string
	for _, col := range requiredColumns {
		i, ok := pos[col]
		if !ok {
			absent = append(absent, col)
			continue
		}
		idx[col] = i
	}
	if len(absent) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(absent, ", "))
	}
	return idx, nil
}

// parseYear accepts "2006" and the float form "2006.0" written by dataframe exports.
func parseYear(s string) (int, error) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid year %q", s)
	}
	return int(f), nil
}

func parseSales(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("sales must be a non-negative number, got %q", s)
	}
	return v, nil
}
