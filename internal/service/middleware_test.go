package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf).Level(zerolog.DebugLevel)

	store := &fakeStore{records: january2022()}
	svc := NewLoggingMiddleware(&log, NewQueryService(store, time.UTC))
	ctx := context.Background()

	_, err := svc.GetNormalizedRange(ctx, date(2022, 1, 1), date(2022, 1, 5))
	require.NoError(t, err)
	_, err = svc.GetBoundValues(ctx, "ADA", nil, nil)
	require.Error(t, err)
	_, err = svc.GetHighestNormalized(ctx, *date(2022, 1, 1))
	require.NoError(t, err)

	store.err = errors.New("disk failure")
	_, err = svc.GetHighestNormalized(ctx, *date(2022, 1, 1))
	require.Error(t, err)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)

	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "GetNormalizedRange", lines[0]["method"])
	assert.Equal(t, "2022-01-01", lines[0]["date_from"])
	assert.EqualValues(t, 5, lines[0]["symbols"])

	assert.Equal(t, "warn", lines[1]["level"])
	assert.Equal(t, "ADA", lines[1]["symbol"])

	assert.Equal(t, "debug", lines[2]["level"])
	assert.Equal(t, "XRP", lines[2]["symbol"])

	assert.Equal(t, "error", lines[3]["level"])
	assert.Contains(t, lines[3]["error"], "disk failure")
}

func TestInstrumentingMiddleware_Records(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewMetrics(reg)
	require.NoError(t, err)

	svc := NewInstrumentingMiddleware(metrics, NewQueryService(&fakeStore{records: january2022()}, time.UTC))
	ctx := context.Background()

	_, _ = svc.GetNormalizedRange(ctx, nil, nil)
	_, _ = svc.GetNormalizedRange(ctx, nil, nil)
	_, _ = svc.GetBoundValues(ctx, "ADA", nil, nil)
	_, _ = svc.GetHighestNormalized(ctx, *date(2030, 1, 1))

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("GetNormalizedRange", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("GetBoundValues", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Requests.WithLabelValues("GetHighestNormalized", "true")))
	assert.Equal(t, 3, testutil.CollectAndCount(metrics.Duration))

	// registering twice on the same registry fails
	_, err = NewMetrics(reg)
	assert.Error(t, err)
}
