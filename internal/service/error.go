package service

import (
	"errors"
	"fmt"
)

const (
	TimezoneUnavailableErrMsg = "timezone database entry unavailable"
	PanicErrMsg               = "an unexpected error occurred on the server, please try again"

	// RemediationHint is appended to every TimezoneUnavailableError. It is
	// addressed to the operator, not the caller: the error cannot be fixed
	// by retrying, only by supplying IANA data to the process.
	RemediationHint = "install the tzdata package of the host (e.g. apt-get install tzdata / apk add tzdata), " +
		"point the ZONEINFO environment variable at a zoneinfo directory, " +
		"or rebuild the binary with -tags timetzdata to embed the IANA database"
)

var (
	// ErrTimezoneUnavailable is the sentinel matched by errors.Is for the
	// one error kind NowFormatted can return.
	ErrTimezoneUnavailable = errors.New(TimezoneUnavailableErrMsg)

	ErrPanic = errors.New(PanicErrMsg)
)

// TimezoneUnavailableError reports that the timezone database of the host
// has no usable entry for the configured zone. It carries the zone name,
// the lookup error and the remediation hint, so the transport layer can
// serve a complete diagnostic without consulting this package again.
type TimezoneUnavailableError struct {
	Zone string
	Err  error
}

func (e *TimezoneUnavailableError) Error() string {
	return fmt.Sprintf("timezone data for %q not found: %v. %s", e.Zone, e.Err, RemediationHint)
}

func (e *TimezoneUnavailableError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match every instance against ErrTimezoneUnavailable.
func (e *TimezoneUnavailableError) Is(target error) bool {
	return target == ErrTimezoneUnavailable
}
