//go:build integration

package integration_test

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

var (
	errStatusServerStatus  = errors.New("status server returns other status than ok")
	errSampleNotFound      = errors.New("no sample matches the series")
	errSampleMalformed     = errors.New("sample line does not split into name and value")
	errStatusServerAddress = errors.New("status server address is missing")
)

// series names one exported time series: a metric name and the label pairs
// a sample line must carry. Matching by substring keeps the lookup
// independent of label order and of the _total suffix the exporter appends
// to counters.
type series struct {
	name   string
	labels []string
}

func seriesOf(t *testing.T, name string, labelPairs ...string) series {
	t.Helper()

	if len(labelPairs)%2 != 0 {
		t.Fatalf("label pairs must come in twos, got %d", len(labelPairs))
	}

	labels := make([]string, 0, len(labelPairs)/2)
	for i := 0; i < len(labelPairs); i += 2 {
		labels = append(labels, labelPairs[i]+`="`+labelPairs[i+1]+`"`)
	}

	return series{name: name, labels: labels}
}

func (s series) matches(line string) bool {
	if !strings.Contains(line, s.name) {
		return false
	}

	for _, label := range s.labels {
		if !strings.Contains(line, label) {
			return false
		}
	}

	return true
}

// statusMetrics reads the Prometheus text the status server exposes.
type statusMetrics struct {
	client *http.Client
	url    string
}

func newStatusMetrics() (*statusMetrics, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	address := cfg.Status.Address
	if address == "" {
		return nil, errStatusServerAddress
	}

	if !strings.HasPrefix(address, "http") {
		address = "http://" + address
	}

	return &statusMetrics{
		client: newHTTPClient(),
		url:    address + "/metrics",
	}, nil
}

// value fetches the exposition text and returns the value of the first
// sample matching the series. HELP and TYPE comments are skipped so a
// label-less series cannot match its own documentation line.
func (sm statusMetrics) value(ctx context.Context, s series) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sm.url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := sm.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error reading metrics: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, errStatusServerStatus
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || !s.matches(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, errSampleMalformed
		}

		return strconv.Atoi(fields[1])
	}

	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("error scanning metrics: %w", err)
	}

	return 0, errSampleNotFound
}

// valueOrZero treats a series the server has not emitted yet as zero, so
// before/after comparisons work against a freshly started instance.
func (sm statusMetrics) valueOrZero(ctx context.Context, s series) (int, error) {
	v, err := sm.value(ctx, s)
	if errors.Is(err, errSampleNotFound) {
		return 0, nil
	}

	return v, err
}
