package service

import (
	"context"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
	"github.com/openkcm/common-sdk/pkg/otlp"
	"github.com/samber/oops"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/oraesatta/cheoresono/internal/clock"
	"github.com/oraesatta/cheoresono/internal/model"
)

const (
	AttrZone         = "zone"
	ErrDomainMetrics = "metrics"
)

// InitMeters registers the service level instruments: counters for rendered
// timestamps and failed zone resolutions, and a gauge reporting the UTC
// offset currently in effect for the configured zone. The gauge re-resolves
// the zone on every observation, which makes daylight saving transitions
// visible as a step from 3600 to 7200 seconds and back.
func InitMeters(ctx context.Context, cfgApp *commoncfg.Application, clk clock.Clock, zones clock.ZoneDB, zone model.Zone) (*Meters, error) {
	meter := otel.Meter(
		cfgApp.Name,
		metric.WithInstrumentationVersion(otel.Version()),
		metric.WithInstrumentationAttributes(otlp.CreateAttributesFrom(*cfgApp)...),
	)

	renderedCtr, err := createCounter(ctx, meter, "time.rendered", "Counter of rendered timestamps, partitioned by zone")
	if err != nil {
		return nil, err
	}

	zoneUnavailableCtr, err := createCounter(ctx, meter, "time.zone_unavailable", "Counter of failed timezone resolutions, partitioned by zone")
	if err != nil {
		return nil, err
	}

	err = createObservableGauge(ctx, meter, "time.zone_utc_offset", "Gauge of the UTC offset in seconds currently in effect for the configured zone",
		func(_ context.Context, observer metric.Int64Observer) error {
			return measureZoneOffset(observer, clk, zones, zone)
		})
	if err != nil {
		return nil, err
	}

	return &Meters{
		application:        cfgApp,
		renderedCtr:        renderedCtr,
		zoneUnavailableCtr: zoneUnavailableCtr,
	}, nil
}

func createCounter(ctx context.Context, meter metric.Meter, name string, description string) (metric.Int64Counter, error) {
	ctr, err := meter.Int64Counter(
		name,
		metric.WithDescription(description),
	)
	if err != nil {
		return nil, oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating %s meter", name)
	}

	return ctr, nil
}

func createObservableGauge(ctx context.Context, meter metric.Meter, name string, description string, callback metric.Int64Callback) error {
	_, err := meter.Int64ObservableGauge(
		name,
		metric.WithDescription(description),
		metric.WithInt64Callback(callback),
	)
	if err != nil {
		return oops.In(ErrDomainMetrics).
			WithContext(ctx).
			Wrapf(err, "creating %s meter", name)
	}

	return nil
}

// measureZoneOffset observes the offset the zone applies to the current
// instant. A failed lookup fails the observation rather than reporting a
// stale or zero offset.
func measureZoneOffset(observer metric.Int64Observer, clk clock.Clock, zones clock.ZoneDB, zone model.Zone) error {
	loc, err := zones.Load(zone.String())
	if err != nil {
		return err
	}

	_, offset := clk.Now().In(loc).Zone()

	observer.Observe(int64(offset), metric.WithAttributes(
		attribute.String(AttrZone, zone.String())))

	return nil
}

type Meters struct {
	application        *commoncfg.Application
	renderedCtr        metric.Int64Counter
	zoneUnavailableCtr metric.Int64Counter
}

func (m *Meters) handleRendered(ctx context.Context, zone string) {
	m.handleCtrInc(ctx, m.renderedCtr, zone)
}

func (m *Meters) handleZoneUnavailable(ctx context.Context, zone string) {
	m.handleCtrInc(ctx, m.zoneUnavailableCtr, zone)
}

func (m *Meters) handleCtrInc(ctx context.Context, ctr metric.Int64Counter, zone string) {
	attrs := metric.WithAttributes(
		otlp.CreateAttributesFrom(*m.application,
			attribute.String(AttrZone, zone),
		)...,
	)

	ctr.Add(ctx, 1, attrs)
}
