// Package api serves the title catalog over HTTP.
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/xdbf/internal/catalog"
	"github.com/samcharles93/xdbf/internal/logger"
	"github.com/samcharles93/xdbf/pkg/xdbf"
)

// Catalog is the read side of catalog.Catalog used by the server.
type Catalog interface {
	Titles() []*catalog.Title
	Get(id string) (*catalog.Title, error)
	Achievements(id string, locale xdbf.Locale) ([]xdbf.Achievement, uint32, error)
	Strings(id string, locale xdbf.Locale) ([]xdbf.StringRecord, error)
	Icon(id string) ([]byte, error)
}

type Server struct {
	catalog Catalog
	log     logger.Logger
	metrics *metrics
}

func NewServer(cat Catalog, log logger.Logger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		catalog: cat,
		log:     log,
		metrics: newMetrics(cat),
	}
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/v1/titles", s.route("list_titles", s.handleListTitles))
	e.GET("/v1/titles/:id", s.route("get_title", s.handleGetTitle))
	e.GET("/v1/titles/:id/achievements", s.route("achievements", s.handleAchievements))
	e.GET("/v1/titles/:id/strings", s.route("strings", s.handleStrings))
	e.GET("/v1/titles/:id/icon", s.route("icon", s.handleIcon))
	e.GET("/metrics", func(c *echo.Context) error {
		s.metrics.handler.ServeHTTP(c.Response(), c.Request())
		return nil
	})
}

// route wraps h so every request is counted and errors share one envelope.
func (s *Server) route(name string, h func(c *echo.Context) (any, error)) func(c *echo.Context) error {
	return func(c *echo.Context) error {
		status := http.StatusOK
		body, err := h(c)
		if err != nil {
			status, body = classify(err)
			if status == http.StatusInternalServerError {
				s.log.Error("request failed", "route", name, "path", c.Request().URL.Path, "error", err)
			}
		}
		s.metrics.requests.WithLabelValues(name, strconv.Itoa(status)).Inc()
		return writeBody(c, status, body)
	}
}

func (s *Server) handleListTitles(c *echo.Context) (any, error) {
	titles := s.catalog.Titles()
	resp := TitleListResponse{Object: "list", Data: make([]TitleResponse, 0, len(titles))}
	for _, t := range titles {
		resp.Data = append(resp.Data, NewTitleResponse(t))
	}
	return resp, nil
}

func (s *Server) handleGetTitle(c *echo.Context) (any, error) {
	t, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		return nil, err
	}
	return NewTitleResponse(t), nil
}

func (s *Server) handleAchievements(c *echo.Context) (any, error) {
	t, locale, err := s.titleLocale(c)
	if err != nil {
		return nil, err
	}
	id := t.ID.String()
	list, count, err := s.catalog.Achievements(id, locale)
	if err != nil {
		return nil, err
	}
	resp := AchievementListResponse{
		Object:  "list",
		TitleID: id,
		Locale:  locale.String(),
		Count:   count,
		Data:    make([]AchievementResponse, 0, len(list)),
	}
	for _, a := range list {
		resp.Data = append(resp.Data, NewAchievementResponse(a))
	}
	return resp, nil
}

func (s *Server) handleStrings(c *echo.Context) (any, error) {
	t, locale, err := s.titleLocale(c)
	if err != nil {
		return nil, err
	}
	id := t.ID.String()
	recs, err := s.catalog.Strings(id, locale)
	if err != nil {
		return nil, err
	}
	resp := StringListResponse{
		Object:  "list",
		TitleID: id,
		Locale:  locale.String(),
		Data:    make([]StringResponse, 0, len(recs)),
	}
	for _, r := range recs {
		resp.Data = append(resp.Data, StringResponse{ID: r.ID, Text: r.Text})
	}
	return resp, nil
}

func (s *Server) handleIcon(c *echo.Context) (any, error) {
	icon, err := s.catalog.Icon(c.Param("id"))
	if err != nil {
		return nil, err
	}
	return rawBody{contentType: http.DetectContentType(icon), data: icon}, nil
}

// titleLocale resolves the :id parameter and the optional locale query.
// Without a locale the title's own default is used.
func (s *Server) titleLocale(c *echo.Context) (*catalog.Title, xdbf.Locale, error) {
	t, err := s.catalog.Get(c.Param("id"))
	if err != nil {
		return nil, 0, err
	}
	raw := strings.TrimSpace(c.QueryParam("locale"))
	if raw == "" {
		return t, t.Summary.DefaultLocale, nil
	}
	locale, err := xdbf.ParseLocale(raw)
	if err != nil {
		return nil, 0, newInvalidRequest(err.Error())
	}
	return t, locale, nil
}
