package pkix

import (
	"time"

	"github.com/gemalto/der-go/der"
)

// Time is the X.509 Time CHOICE.  Dates before 2050 are encoded as UTCTime,
// later ones as GeneralizedTime.
type Time struct {
	DERChoice       struct{}
	UTCTime         *time.Time `der:"utc"`
	GeneralizedTime *time.Time `der:"generalized"`
}

// NewTime selects the variant for t, truncated to whole seconds.
func NewTime(t time.Time) Time {
	t = t.UTC().Truncate(time.Second)
	if der.UTCTimeRepresentable(t) {
		return Time{UTCTime: &t}
	}
	return Time{GeneralizedTime: &t}
}

// Value returns the time of whichever variant is set.
func (t Time) Value() time.Time {
	switch {
	case t.UTCTime != nil:
		return *t.UTCTime
	case t.GeneralizedTime != nil:
		return *t.GeneralizedTime
	}
	return time.Time{}
}

// Validity is the validity period of a certificate.
type Validity struct {
	NotBefore Time
	NotAfter  Time
}
