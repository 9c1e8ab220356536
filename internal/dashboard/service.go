// Package dashboard assembles the dashboard panels from the dataset and the
// region table. Every call recomputes from the full dataset.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"vgsales/internal/engine"
	apperr "vgsales/internal/errors"
	"vgsales/internal/models"
	"vgsales/internal/regions"
)

// Panel sizes used by the page.
const (
	DefaultTopGames     = 3
	DefaultTopPlatforms = 6
	PublisherLimit      = 15
)

// NoPercentage is shown in place of a percentage that cannot be computed.
const NoPercentage = "—"

// Service builds dashboard panels.
type Service struct {
	data    *engine.Dataset
	regions *regions.Table
	logger  *slog.Logger
}

// NewService creates a Service over an already loaded dataset.
func NewService(data *engine.Dataset, table *regions.Table, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{data: data, regions: table, logger: logger}
}

// Dataset returns the dataset the service reads from.
func (s *Service) Dataset() *engine.Dataset { return s.data }

// TopGames returns the n best selling games of region with their share of the
// region's configured total.
func (s *Service) TopGames(region engine.Region, n int) ([]models.TopGame, error) {
	if _, err := engine.ParseRegion(string(region)); err != nil {
		return nil, err
	}
	total, err := s.regions.Total(region)
	if err != nil {
		return nil, err
	}

	col := region.SalesColumn()
	top, err := engine.TopNBySalesColumn(s.data, col, n)
	if err != nil {
		return nil, err
	}

	games := make([]models.TopGame, 0, len(top))
	for i := range top {
		sales := col.Value(&top[i])
		game := models.TopGame{
			Rank:     i + 1,
			Name:     top[i].Name,
			Platform: top[i].Platform,
			Sales:    sales,
			Label:    NoPercentage,
		}
		pct, err := engine.PercentageOfRegionTotal(sales, total)
		switch {
		case err == nil:
			game.Percentage = &pct
			game.Label = fmt.Sprintf("%.1f%%", pct)
		case apperr.Is(err, apperr.ErrDivisionByZero):
			s.logger.Debug("region total is zero, omitting percentage", "region", region)
		default:
			return nil, err
		}
		games = append(games, game)
	}
	return games, nil
}

// RegionMap returns the labels and country colouring for the world map.
func (s *Service) RegionMap() models.RegionMap {
	entries := s.regions.MapEntries()
	out := models.RegionMap{
		Labels:    make([]models.RegionLabel, 0, len(entries)),
		Countries: make(map[string]string, len(s.regions.Countries)),
		Default:   string(engine.Other),
	}
	for _, e := range entries {
		out.Labels = append(out.Labels, models.RegionLabel{
			Region:      string(e.Region),
			Sales:       e.MapSales,
			Coordinates: e.Coordinates,
			Color:       e.Color,
		})
	}
	for country := range s.regions.Countries {
		out.Countries[country] = string(s.regions.RegionOf(country))
	}
	return out
}

// GenreSales ranks every genre by global sales.
func (s *Service) GenreSales() ([]models.RankedItem, error) {
	table, err := engine.SumByCategory(s.data, engine.ByGenre, engine.GlobalSales)
	if err != nil {
		return nil, err
	}
	return ranked(engine.TopKCategoriesBySum(table, table.Len())), nil
}

// TopPlatforms returns the k platforms with the highest global sales and each
// one's share of their combined sales.
func (s *Service) TopPlatforms(k int) ([]models.RankedItem, error) {
	table, err := engine.SumByCategory(s.data, engine.ByPlatform, engine.GlobalSales)
	if err != nil {
		return nil, err
	}
	items := ranked(engine.TopKCategoriesBySum(table, k))

	var sum float64
	for _, it := range items {
		sum += it.Value
	}
	for i := range items {
		if pct, err := engine.PercentageOfRegionTotal(items[i].Value, sum); err == nil {
			items[i].Share = pct
		}
	}
	return items, nil
}

// CategorySales sums the four regional columns per value of category. Publishers
// are restricted to the most frequent ones, in frequency order.
func (s *Service) CategorySales(category engine.Category) (models.CategorySales, error) {
	table, err := engine.SumByCategory(s.data, category, engine.RegionalColumns...)
	if err != nil {
		return models.CategorySales{}, err
	}

	var rows []engine.GroupRow
	if category == engine.ByPublisher {
		top, err := engine.TopKCategoriesByFrequency(s.data, category, PublisherLimit)
		if err != nil {
			return models.CategorySales{}, err
		}
		keys := make([]string, len(top))
		for i, c := range top {
			keys[i] = c.Key
		}
		rows = table.Select(keys)
	} else {
		rows = table.Rows()
	}

	out := models.CategorySales{
		Category: string(category),
		Series:   make([]string, len(table.Columns)),
		Rows:     make([]models.CategoryRow, 0, len(rows)),
	}
	for i, c := range table.Columns {
		out.Series[i] = string(c)
	}
	for _, r := range rows {
		sales := make(map[string]float64, len(r.Sums))
		for i, c := range table.Columns {
			sales[string(c)] = r.Sums[i]
		}
		out.Rows = append(out.Rows, models.CategoryRow{Key: r.Key, Sales: sales})
	}
	return out, nil
}

// Overview builds every panel. Panels are computed concurrently; the dataset is
// only read.
func (s *Service) Overview(ctx context.Context, region engine.Region, category engine.Category) (*models.Overview, error) {
	if _, err := engine.ParseRegion(string(region)); err != nil {
		return nil, err
	}
	if !category.Valid() {
		return nil, apperr.InvalidArgumentf("unknown category %q", category)
	}

	out := &models.Overview{
		Region:    string(region),
		Category:  string(category),
		RegionMap: s.RegionMap(),
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var g errgroup.Group
	g.Go(func() (err error) {
		out.TopGames, err = s.TopGames(region, DefaultTopGames)
		return err
	})
	g.Go(func() (err error) {
		out.GenreSales, err = s.GenreSales()
		return err
	})
	g.Go(func() (err error) {
		out.CategorySales, err = s.CategorySales(category)
		return err
	})
	g.Go(func() (err error) {
		out.TopPlatforms, err = s.TopPlatforms(DefaultTopPlatforms)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func ranked(rows []engine.GroupRow) []models.RankedItem {
	items := make([]models.RankedItem, len(rows))
	for i, r := range rows {
		items[i] = models.RankedItem{Name: r.Key, Value: r.Total()}
	}
	return items
}
