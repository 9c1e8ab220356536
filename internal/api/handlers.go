package api

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"vgsales/internal/charts"
	"vgsales/internal/dashboard"
	"vgsales/internal/engine"
	apperr "vgsales/internal/errors"
	"vgsales/internal/export"
	"vgsales/internal/models"
	"vgsales/web"
)

type Handler struct {
	svc *dashboard.Service
}

func NewHandler(svc *dashboard.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)

	api := e.Group("/api", h.etag)
	api.GET("/health", h.Health)
	api.GET("/games/top", h.GetTopGames)
	api.GET("/regions/map", h.GetRegionMap)
	api.GET("/genres/sales", h.GetGenreSales)
	api.GET("/sales/by-category", h.GetCategorySales)
	api.GET("/platforms/top", h.GetTopPlatforms)
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/export.xlsx", h.GetWorkbook)

	ch := api.Group("/charts")
	ch.GET("/donut.png", h.GetDonutChart)
	ch.GET("/genres.png", h.GetGenreChart)
	ch.GET("/category.png", h.GetCategoryChart)
	ch.GET("/platforms.png", h.GetPlatformChart)
}

// --- REQUESTS ---

type topGamesQuery struct {
	Region string `query:"region" validate:"omitempty,oneof=Global 'North America' Europe Japan Other"`
	N      int    `query:"n" validate:"gte=1,lte=100"`
}

type donutQuery struct {
	Region string `query:"region" validate:"omitempty,oneof=Global 'North America' Europe Japan Other"`
	Rank   int    `query:"rank" validate:"gte=1,lte=100"`
}

type categoryQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=year platform genre publisher"`
}

type platformsQuery struct {
	K int `query:"k" validate:"gte=1,lte=50"`
}

type dashboardQuery struct {
	Region   string `query:"region" validate:"omitempty,oneof=Global 'North America' Europe Japan Other"`
	Category string `query:"category" validate:"omitempty,oneof=year platform genre publisher"`
}

// bindQuery fills req from the query string and validates it. Fields keep
// their preset values when the parameter is absent.
func bindQuery(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func parseRegion(s string) (engine.Region, error) {
	if s == "" {
		return engine.Global, nil
	}
	return engine.ParseRegion(s)
}

func parseCategory(s string) (engine.Category, error) {
	if s == "" {
		return engine.ByYear, nil
	}
	return engine.ParseCategory(s)
}

// --- HANDLERS ---

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func paginate[T any](items []T, limit, offset int) models.Page[T] {
	total := len(items)
	if offset >= total {
		return models.Page[T]{Data: []T{}, Total: total, Limit: limit, Offset: offset}
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return models.Page[T]{Data: items[offset:end], Total: total, Limit: limit, Offset: offset}
}

func (h *Handler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, web.IndexHTML)
}

func (h *Handler) Health(c echo.Context) error {
	ds := h.svc.Dataset()
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "ok",
		"records":     ds.Len(),
		"fingerprint": ds.Fingerprint(),
		"loaded_at":   ds.LoadedAt().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetTopGames(c echo.Context) error {
	req := topGamesQuery{N: dashboard.DefaultTopGames}
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		return err
	}
	games, err := h.svc.TopGames(region, req.N)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, games)
}

func (h *Handler) GetRegionMap(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.RegionMap())
}

// returns every genre ranked by global sales
func (h *Handler) GetGenreSales(c echo.Context) error {
	items, err := h.svc.GenreSales()
	if err != nil {
		return err
	}
	limit, offset := getPaginationParams(c, len(items))
	return c.JSON(http.StatusOK, paginate(items, limit, offset))
}

func (h *Handler) GetCategorySales(c echo.Context) error {
	var req categoryQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return err
	}
	out, err := h.svc.CategorySales(category)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetTopPlatforms(c echo.Context) error {
	req := platformsQuery{K: dashboard.DefaultTopPlatforms}
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	items, err := h.svc.TopPlatforms(req.K)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) overview(c echo.Context) (*models.Overview, error) {
	var req dashboardQuery
	if err := bindQuery(c, &req); err != nil {
		return nil, err
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		return nil, err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return nil, err
	}
	return h.svc.Overview(c.Request().Context(), region, category)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	ov, err := h.overview(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ov)
}

func (h *Handler) GetWorkbook(c echo.Context) error {
	ov, err := h.overview(c)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := export.Workbook(&buf, ov); err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="video_games_sales.xlsx"`)
	return c.Blob(http.StatusOK, export.ContentType, buf.Bytes())
}

// --- CHARTS ---

// renderPNG buffers the chart so a failed render never sends a partial image.
func renderPNG(c echo.Context, render func(w io.Writer) error) error {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		return err
	}
	return c.Blob(http.StatusOK, charts.ContentType, buf.Bytes())
}

func (h *Handler) GetDonutChart(c echo.Context) error {
	req := donutQuery{Rank: 1}
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	region, err := parseRegion(req.Region)
	if err != nil {
		return err
	}
	games, err := h.svc.TopGames(region, req.Rank)
	if err != nil {
		return err
	}
	if len(games) < req.Rank {
		return apperr.NoData("no game at that rank")
	}
	return renderPNG(c, func(w io.Writer) error {
		return charts.TopGameDonut(w, games[req.Rank-1])
	})
}

func (h *Handler) GetGenreChart(c echo.Context) error {
	items, err := h.svc.GenreSales()
	if err != nil {
		return err
	}
	return renderPNG(c, func(w io.Writer) error { return charts.GenreBar(w, items) })
}

func (h *Handler) GetCategoryChart(c echo.Context) error {
	var req categoryQuery
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	category, err := parseCategory(req.Category)
	if err != nil {
		return err
	}
	out, err := h.svc.CategorySales(category)
	if err != nil {
		return err
	}
	return renderPNG(c, func(w io.Writer) error { return charts.CategoryStackedBar(w, out) })
}

func (h *Handler) GetPlatformChart(c echo.Context) error {
	req := platformsQuery{K: dashboard.DefaultTopPlatforms}
	if err := bindQuery(c, &req); err != nil {
		return err
	}
	items, err := h.svc.TopPlatforms(req.K)
	if err != nil {
		return err
	}
	return renderPNG(c, func(w io.Writer) error { return charts.PlatformPie(w, items) })
}
