package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent opponent-decision requests. Using a centralized
// singleflight.Group ensures only one provider call runs for a given
// contest/round while other callers wait for the result.

import "golang.org/x/sync/singleflight"

// DecisionGroup deduplicates opponent decision requests keyed by the
// serialized round snapshot.
var DecisionGroup singleflight.Group
