// Package export writes dashboard panels to an Excel workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"vgsales/internal/models"
)

// ContentType is the MIME type of the generated workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet names, in workbook order.
const (
	SheetTopGames  = "Top Games"
	SheetRegions   = "Regions"
	SheetGenres    = "Genres"
	SheetCategory  = "By Category"
	SheetPlatforms = "Platforms"
)

// Workbook writes one sheet per panel of ov to w.
func Workbook(w io.Writer, ov *models.Overview) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetTopGames); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	for _, name := range []string{SheetRegions, SheetGenres, SheetCategory, SheetPlatforms} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	writers := []func(*excelize.File, int, *models.Overview) error{
		writeTopGames, writeRegions, writeGenres, writeCategory, writePlatforms,
	}
	for _, write := range writers {
		if err := write(f, header, ov); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// writeRows writes header then rows starting at A1 and bolds the header.
func writeRows(f *excelize.File, sheet string, style int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("%s: write header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("%s: style header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s: write row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func writeTopGames(f *excelize.File, style int, ov *models.Overview) error {
	rows := make([][]any, 0, len(ov.TopGames))
	for _, g := range ov.TopGames {
		var pct any = g.Label
		if g.Percentage != nil {
			pct = *g.Percentage
		}
		rows = append(rows, []any{g.Rank, g.Name, g.Platform, g.Sales, pct})
	}
	header := []any{"Rank", "Name", "Platform", ov.Region + " Sales (M)", "Percentage"}
	return writeRows(f, SheetTopGames, style, header, rows)
}

func writeRegions(f *excelize.File, style int, ov *models.Overview) error {
	rows := make([][]any, 0, len(ov.RegionMap.Labels))
	for _, l := range ov.RegionMap.Labels {
		rows = append(rows, []any{l.Region, l.Sales, l.Coordinates[0], l.Coordinates[1]})
	}
	return writeRows(f, SheetRegions, style, []any{"Region", "Sales (M)", "Longitude", "Latitude"}, rows)
}

func writeGenres(f *excelize.File, style int, ov *models.Overview) error {
	rows := make([][]any, 0, len(ov.GenreSales))
	for _, g := range ov.GenreSales {
		rows = append(rows, []any{g.Name, g.Value})
	}
	return writeRows(f, SheetGenres, style, []any{"Genre", "Global Sales (M)"}, rows)
}

func writeCategory(f *excelize.File, style int, ov *models.Overview) error {
	cs := ov.CategorySales
	header := []any{cs.Category}
	for _, s := range cs.Series {
		header = append(header, s)
	}
	rows := make([][]any, 0, len(cs.Rows))
	for _, r := range cs.Rows {
		row := []any{r.Key}
		for _, s := range cs.Series {
			row = append(row, r.Sales[s])
		}
		rows = append(rows, row)
	}
	return writeRows(f, SheetCategory, style, header, rows)
}

func writePlatforms(f *excelize.File, style int, ov *models.Overview) error {
	rows := make([][]any, 0, len(ov.TopPlatforms))
	for _, p := range ov.TopPlatforms {
		rows = append(rows, []any{p.Name, p.Value, p.Share})
	}
	return writeRows(f, SheetPlatforms, style, []any{"Platform", "Global Sales (M)", "Share (%)"}, rows)
}
