// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scoring

import (
	"errors"
	"fmt"
)

// ErrEmptyCatalog is returned when Score receives no candidate sites.
// Callers should surface "no sites to analyze" and not render results.
var ErrEmptyCatalog = errors.New("no candidate sites to analyze")

// ValidationError reports a malformed weight or a non-numeric attribute.
// It names the offending criterion and, for attribute errors, the site,
// so the caller can decide whether to drop the site or abort the run.
type ValidationError struct {
	// SiteID is the affected site, empty for weight errors.
	SiteID string

	// Criterion is the affected criterion name.
	Criterion string

	// Reason describes what was wrong with the value.
	Reason string
}

func (e *ValidationError) Error() string {
	if e.SiteID == "" {
		return fmt.Sprintf("invalid weight for criterion %q: %s", e.Criterion, e.Reason)
	}
	return fmt.Sprintf("invalid attribute for criterion %q on site %q: %s", e.Criterion, e.SiteID, e.Reason)
}
