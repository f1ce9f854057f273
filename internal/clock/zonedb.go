package clock

import "time"

// ZoneDB resolves IANA zone identifiers to their rules. The returned
// *time.Location carries the zone's full transition table, so converting an
// instant through it applies the UTC offset in effect at that instant,
// daylight saving included. Nothing about an offset may be cached outside
// of it.
type ZoneDB interface {
	Load(name string) (*time.Location, error)
}

// SystemZoneDB looks zones up in the timezone database of the host. Lookups
// fail on hosts that ship no IANA data.
type SystemZoneDB struct{}

func (SystemZoneDB) Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
