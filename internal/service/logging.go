package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/cryptostats/internal/domain/models"
)

// loggingMiddleware wraps a QueryService and logs each call with its outcome.
type loggingMiddleware struct {
	log *zerolog.Logger
	svc QueryService
}

// NewLoggingMiddleware decorates svc with structured query logs. Successful
// calls are logged at debug level, failures at warn (client errors) or error.
func NewLoggingMiddleware(log *zerolog.Logger, svc QueryService) QueryService {
	return &loggingMiddleware{log: log, svc: svc}
}

func (m *loggingMiddleware) GetNormalizedRange(ctx context.Context, dateFrom, dateTo *time.Time) (out []models.NormalizedRange, err error) {
	defer func(begin time.Time) {
		m.event(err).
			Str("method", "GetNormalizedRange").
			Str("date_from", formatDate(dateFrom)).
			Str("date_to", formatDate(dateTo)).
			Int("symbols", len(out)).
			Dur("elapsed", time.Since(begin)).
			Err(err).
			Msg("query")
	}(time.Now())
	return m.svc.GetNormalizedRange(ctx, dateFrom, dateTo)
}

func (m *loggingMiddleware) GetBoundValues(ctx context.Context, symbol string, dateFrom, dateTo *time.Time) (out *models.BoundValues, err error) {
	defer func(begin time.Time) {
		m.event(err).
			Str("method", "GetBoundValues").
			Str("symbol", symbol).
			Str("date_from", formatDate(dateFrom)).
			Str("date_to", formatDate(dateTo)).
			Dur("elapsed", time.Since(begin)).
			Err(err).
			Msg("query")
	}(time.Now())
	return m.svc.GetBoundValues(ctx, symbol, dateFrom, dateTo)
}

func (m *loggingMiddleware) GetHighestNormalized(ctx context.Context, day time.Time) (out *models.NormalizedRange, err error) {
	defer func(begin time.Time) {
		e := m.event(err).
			Str("method", "GetHighestNormalized").
			Str("day", day.Format(models.DateLayout)).
			Dur("elapsed", time.Since(begin))
		if out != nil {
			e = e.Str("symbol", out.Symbol.String())
		}
		e.Err(err).Msg("query")
	}(time.Now())
	return m.svc.GetHighestNormalized(ctx, day)
}

func (m *loggingMiddleware) event(err error) *zerolog.Event {
	switch {
	case err == nil:
		return m.log.Debug()
	case IsValidation(err), IsComputation(err), errors.Is(err, ErrNotFound):
		return m.log.Warn()
	default:
		return m.log.Error()
	}
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(models.DateLayout)
}
