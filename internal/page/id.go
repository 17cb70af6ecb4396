package page

import "github.com/oklog/ulid/v2"

// NewBoundaryID returns a document-unique element id for a deferred region.
func NewBoundaryID() string {
	return "B-" + ulid.Make().String()
}
