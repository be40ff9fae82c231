package api

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"xsentiment/internal/analysis"
	"xsentiment/internal/domain"
	"xsentiment/internal/logging"
)

var langPattern = regexp.MustCompile(`^[a-zA-Z]{2,3}(-[a-zA-Z0-9]{2,8})?$`)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) search(c echo.Context) error {
	req, err := parseSearchRequest(c)
	if err != nil {
		return s.fail(c, err)
	}

	resp, err := s.analyzer.Search(c.Request().Context(), req)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, resp)
}

func parseSearchRequest(c echo.Context) (analysis.Request, error) {
	req := analysis.Request{
		Query: c.QueryParam("q"),
		Count: analysis.DefaultCount,
	}
	if strings.TrimSpace(req.Query) == "" {
		return req, domain.InvalidInput("query parameter q is required")
	}

	if raw := c.QueryParam("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return req, domain.InvalidInput("count must be an integer")
		}
		if n < analysis.MinCount || n > analysis.MaxCount {
			return req, domain.InvalidInput("count must be between %d and %d", analysis.MinCount, analysis.MaxCount)
		}
		req.Count = n
	}

	if lang := strings.TrimSpace(c.QueryParam("lang")); lang != "" {
		if !langPattern.MatchString(lang) {
			return req, domain.InvalidInput("lang must be a language code such as \"en\"")
		}
		req.Language = lang
	}

	return req, nil
}

func (s *Server) fail(c echo.Context, err error) error {
	switch domain.Kind(err) {
	case domain.KindInvalidInput:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.KindRateLimited:
		c.Response().Header().Set("Retry-After", strconv.Itoa(int(domain.RetryAfter.Seconds())))
		return c.JSON(http.StatusTooManyRequests, errorResponse{Error: "search API rate limit exceeded"})
	default:
		logging.WithRequest(c.Response().Header().Get(echo.HeaderXRequestID)).
			ErrorContext(c.Request().Context(), "search failed", "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error: " + err.Error()})
	}
}
