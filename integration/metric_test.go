//go:build integration

package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oraesatta/cheoresono/internal/handler"
	"github.com/oraesatta/cheoresono/internal/model"
)

func TestTimeMetrics(t *testing.T) {
	url, err := baseURL()
	require.NoError(t, err)

	client := newHTTPClient()

	metrics, err := newStatusMetrics()
	require.NoError(t, err)

	ctx := t.Context()

	// One warm up request so the request scoped instruments exist before
	// the before/after comparisons start.
	resp, _ := getBody(t, client, url+handler.PathCheOreSono)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	zone := model.DefaultZone.String()

	t.Run("Rendered counter", func(t *testing.T) {
		rendered := seriesOf(t, "time_rendered", "zone", zone)

		t.Run("should increase for every served timestamp", func(t *testing.T) {
			// Given
			totalBefore, err := metrics.valueOrZero(ctx, rendered)
			assert.NoError(t, err)

			// When
			resp, body := getBody(t, client, url+handler.PathCheOreSono)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			require.Regexp(t, timePattern, body)

			// Then
			totalAfter, err := metrics.valueOrZero(ctx, rendered)
			assert.NoError(t, err)
			assert.Equal(t, totalBefore+1, totalAfter)
		})
	})

	t.Run("Request counter", func(t *testing.T) {
		requests := seriesOf(t, "http_request_count", "status", "200")

		t.Run("should increase for every handled request", func(t *testing.T) {
			// Given
			totalBefore, err := metrics.valueOrZero(ctx, requests)
			assert.NoError(t, err)

			// When
			resp, _ := getBody(t, client, url+handler.PathCheOreSono)
			require.Equal(t, http.StatusOK, resp.StatusCode)

			// Then
			totalAfter, err := metrics.valueOrZero(ctx, requests)
			assert.NoError(t, err)
			assert.Equal(t, totalBefore+1, totalAfter)
		})
	})

	t.Run("UTC offset gauge", func(t *testing.T) {
		gauge := seriesOf(t, "time_zone_utc_offset", "zone", zone)

		t.Run("should report the offset currently in effect", func(t *testing.T) {
			// When
			offset, err := metrics.value(ctx, gauge)

			// Then
			assert.NoError(t, err)
			// CET in winter, CEST in summer.
			assert.Contains(t, []int{3600, 7200}, offset)
		})
	})
}
