package rates

import (
	"errors"
	"fmt"
	"time"

	"github.com/mycloudcondo/kuyan/internal/currency"
)

// ErrNoRate is returned by a Provider when no rate is published for the
// requested pair and date. Anything else a provider returns is treated as
// transient.
var ErrNoRate = errors.New("no rate published")

// Reason classifies why a rate could not be resolved within the fallback
// window.
type Reason string

const (
	ReasonNetwork Reason = "network_failure"
	ReasonNoData  Reason = "no_data"
)

// UnavailableError reports that no usable rate could be found within the
// fallback window. It is a data condition, not a failure: callers record the
// affected entries as unresolved and keep going.
type UnavailableError struct {
	Base   currency.Code
	Quote  currency.Code
	Date   time.Time
	Reason Reason
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("no usable %s/%s rate on or before %s: %s",
		e.Base, e.Quote, e.Date.Format(time.DateOnly), e.Reason)
}
