package usecase

import "time"

const (
	// DefaultPerPage is the listing page size used when configuration does
	// not provide one. All listing queries share the same page size.
	DefaultPerPage = 10

	// DetailCacheTTL bounds how long a composed detail view may be served
	// from cache. Details are invalidated eagerly on soft delete.
	DetailCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
