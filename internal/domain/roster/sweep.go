package roster

import (
	"fmt"
	"strings"
)

// SweepPolicy decides which drafts the round sweep copies into base.
type SweepPolicy string

const (
	// SweepUnconditional copies every draft regardless of size or minimums.
	SweepUnconditional SweepPolicy = "unconditional"
	// SweepCompleteOnly copies only drafts that pass ValidateFinalRoster.
	SweepCompleteOnly SweepPolicy = "complete_only"
)

func ParseSweepPolicy(v string) (SweepPolicy, error) {
	switch SweepPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case "", SweepUnconditional:
		return SweepUnconditional, nil
	case SweepCompleteOnly:
		return SweepCompleteOnly, nil
	default:
		return "", fmt.Errorf("invalid sweep policy %q: valid values are %s, %s", v, SweepUnconditional, SweepCompleteOnly)
	}
}
