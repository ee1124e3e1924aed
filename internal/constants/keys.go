package constants

import "time"

const (
	// Context Keys
	ContextKeyView = "view"
	ContextKeySite = "site"

	// Session Keys
	SessionName    = "folio_session"
	SessionKeyView = "view"

	// Listing views
	ViewCards = "cards"
	ViewList  = "list"
)

const (
	// SkeletonCount is the number of placeholder cards shown while the
	// listing hydrates.
	SkeletonCount = 6

	// MaxCardTags caps the tag chips rendered on a listing card.
	MaxCardTags = 6

	// ExcerptLength is the rune budget of a derived excerpt.
	ExcerptLength = 160

	// SearchPageSize is the number of hits per search page.
	SearchPageSize = 10

	// CopyAckDuration is how long a code block shows "Copied!".
	CopyAckDuration = 1200 * time.Millisecond

	// ReindexDebounce delays a re-index after a burst of file events.
	ReindexDebounce = 500 * time.Millisecond

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// WritingPath is the route prefix of the blog.
const WritingPath = "/writing"
