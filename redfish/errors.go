package redfish

import "github.com/pkg/errors"

// ErrNoOdataIdForRefetch is returned by EnsureFresh when the variant was
// never associated with a canonical @odata.id, so there is nothing to
// refetch.
var ErrNoOdataIdForRefetch = errors.New("redfish: no @odata.id for refetch")
