package service

import (
	"context"

	slogctx "github.com/veqryn/slog-context"

	"github.com/oraesatta/cheoresono/internal/clock"
	"github.com/oraesatta/cheoresono/internal/model"
)

// WallClock reports the current date and time in one fixed zone as a
// fixed-width string. It holds no mutable state: the zone is immutable and
// both collaborators are read-only views of the host environment, so any
// number of requests may call it concurrently.
type WallClock struct {
	zone   model.Zone
	clock  clock.Clock
	zones  clock.ZoneDB
	meters *Meters
}

// NewWallClock creates and returns a new instance of WallClock.
func NewWallClock(zone model.Zone, clk clock.Clock, zones clock.ZoneDB, meters *Meters) *WallClock {
	return &WallClock{
		zone:   zone,
		clock:  clk,
		zones:  zones,
		meters: meters,
	}
}

// NowFormatted resolves the configured zone against the timezone database,
// reads the clock and renders the instant as YYYY-MM-DD HH:MM:SS local to
// the zone. The zone rules are resolved on every call: the offset must
// follow daylight saving transitions, and a fixed cached offset would
// render wrong local times twice a year.
//
// The only failure mode is a *TimezoneUnavailableError when the database
// has no entry for the zone. No partial or default-zone string is ever
// returned alongside it.
func (w *WallClock) NowFormatted(ctx context.Context) (model.FormattedTime, error) {
	slogctx.Debug(ctx, "NowFormatted called", "zone", w.zone.String())

	loc, err := w.zones.Load(w.zone.String())
	if err != nil {
		slogctx.Error(ctx, "timezone resolution failed", "zone", w.zone.String(), "error", err)
		w.meters.handleZoneUnavailable(ctx, w.zone.String())

		return "", &TimezoneUnavailableError{Zone: w.zone.String(), Err: err}
	}

	formatted := model.FormatTime(w.clock.Now().In(loc))

	w.meters.handleRendered(ctx, w.zone.String())

	return formatted, nil
}
