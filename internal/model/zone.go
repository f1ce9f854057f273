package model

import "errors"

var ErrZoneIsEmpty = errors.New("timezone identifier is empty")

// DefaultZone is the zone the service reports time in unless configuration
// says otherwise.
const DefaultZone Zone = "Europe/Rome"

// Zone names an entry of the IANA timezone database, e.g. "Europe/Rome".
// It is fixed per process: callers cannot supply one per request.
type Zone string

// Validate validates the zone identifier. Whether the identifier actually
// resolves is decided by the timezone database at lookup time.
func (z Zone) Validate() error {
	if len(z) == 0 {
		return ErrZoneIsEmpty
	}

	return nil
}

func (z Zone) String() string {
	return string(z)
}
