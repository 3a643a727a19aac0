package document

import "github.com/google/uuid"

// NewID mints a globally unique identifier for pages, dividers, sources and
// commands. Ids are never reused; inverse operations that must reconstruct
// an entry reuse the id recorded at creation time instead of minting again.
func NewID() string {
	return uuid.New().String()
}
