package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/cryptostats/internal/domain/dto"
	"github.com/guttosm/cryptostats/internal/domain/models"
	"github.com/guttosm/cryptostats/internal/service"
)

// Handler provides HTTP handlers for the crypto statistics endpoints.
//
// Responsibilities:
//   - Parse and validate the format of query/path parameters
//   - Delegate to the query service
//   - Translate results into response DTOs and errors into status codes
type Handler struct {
	svc service.QueryService
}

// NewHandler constructs a new Handler instance.
func NewHandler(svc service.QueryService) *Handler {
	return &Handler{svc: svc}
}

// GetNormalizedRange godoc
// @Summary      Rank cryptos by normalized range
// @Description  Returns every crypto with prices in the window, sorted by (max-min)/min descending
// @Tags         cryptos
// @Produce      json
// @Param        dateFrom  query     string  false  "Inclusive start date (YYYY-MM-DD)" example(2022-01-01)
// @Param        dateTo    query     string  false  "Inclusive end date (YYYY-MM-DD)"   example(2022-01-31)
// @Success      200       {array}   dto.NormalizedRangeResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse  "Not Found"
// @Failure      422       {object}  dto.ErrorResponse  "Unprocessable price data"
// @Failure      500       {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/cryptos/normalizedRange [get]
func (h *Handler) GetNormalizedRange(c *gin.Context) {
	from, to, ok := dateWindowParams(c)
	if !ok {
		return
	}

	ranked, err := h.svc.GetNormalizedRange(c.Request.Context(), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromNormalizedRanges(ranked))
}

// GetBoundValues godoc
// @Summary      Get bound values of a crypto
// @Description  Returns the oldest, newest, min and max prices of one crypto within the window
// @Tags         cryptos
// @Produce      json
// @Param        symbol    path      string  true   "Crypto symbol (case-sensitive)" Enums(BTC, DOGE, ETH, LTC, XRP)
// @Param        dateFrom  query     string  false  "Inclusive start date (YYYY-MM-DD)" example(2022-01-01)
// @Param        dateTo    query     string  false  "Inclusive end date (YYYY-MM-DD)"   example(2022-01-31)
// @Success      200       {object}  dto.BoundValuesResponse
// @Failure      400       {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404       {object}  dto.ErrorResponse  "Not Found"
// @Failure      500       {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/cryptos/{symbol}/boundValues [get]
func (h *Handler) GetBoundValues(c *gin.Context) {
	from, to, ok := dateWindowParams(c)
	if !ok {
		return
	}

	bounds, err := h.svc.GetBoundValues(c.Request.Context(), c.Param("symbol"), from, to)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromBoundValues(*bounds))
}

// GetHighestNormalized godoc
// @Summary      Crypto with the highest normalized range on a day
// @Description  Returns the crypto whose prices on the given day have the highest (max-min)/min
// @Tags         cryptos
// @Produce      json
// @Param        day  query     string  true  "Day (YYYY-MM-DD)" example(2022-01-02)
// @Success      200  {object}  dto.NormalizedRangeResponse
// @Failure      400  {object}  dto.ErrorResponse  "Bad Request"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      422  {object}  dto.ErrorResponse  "Unprocessable price data"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/cryptos/normalizedRange/highest [get]
func (h *Handler) GetHighestNormalized(c *gin.Context) {
	if strings.TrimSpace(c.Query("day")) == "" {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("day is required", nil))
		return
	}
	day, ok := dateParam(c, "day")
	if !ok {
		return
	}

	best, err := h.svc.GetHighestNormalized(c.Request.Context(), *day)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromNormalizedRange(*best))
}

// dateWindowParams reads the optional dateFrom/dateTo query parameters.
// On a malformed value it writes a 400 response and returns ok=false.
func dateWindowParams(c *gin.Context) (from, to *time.Time, ok bool) {
	if from, ok = dateParam(c, "dateFrom"); !ok {
		return nil, nil, false
	}
	if to, ok = dateParam(c, "dateTo"); !ok {
		return nil, nil, false
	}
	return from, to, true
}

// dateParam parses an optional YYYY-MM-DD query parameter; empty means nil.
func dateParam(c *gin.Context, name string) (*time.Time, bool) {
	s := strings.TrimSpace(c.Query(name))
	if s == "" {
		return nil, true
	}
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(fmt.Sprintf("invalid %s format, expected YYYY-MM-DD", name), err))
		return nil, false
	}
	return &d, true
}

// writeError maps query errors to HTTP responses.
//
//   - ValidationError  → 400
//   - ErrNotFound      → 404
//   - ComputationError → 422
//   - anything else    → 500
func writeError(c *gin.Context, err error) {
	_ = c.Error(err)

	switch {
	case service.IsValidation(err):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid request", err))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(service.ErrNotFound.Error(), nil))
	case service.IsComputation(err):
		c.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse("cannot compute statistics", err))
	default:
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("failed to fetch prices", err))
	}
}
