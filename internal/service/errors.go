package service

import "errors"

// Sentinel errors callers can test for programmatically.
var (
	// ErrRowNotFound means the row index does not exist in the ledger.
	ErrRowNotFound = errors.New("row not found")

	// ErrProductUnavailable means the product is missing from the catalog or
	// already booked on another row.
	ErrProductUnavailable = errors.New("product not available for this row")

	// ErrCatalogNotLoaded means a row edit was attempted before the catalog
	// load succeeded.
	ErrCatalogNotLoaded = errors.New("product catalog not loaded")

	// ErrSubmitInFlight means a submit was attempted while the previous one
	// is still outstanding.
	ErrSubmitInFlight = errors.New("a submission is already in flight")

	// ErrDuplicateProduct is the post-hoc guard: two rows ended up on the
	// same product and the payload was refused.
	ErrDuplicateProduct = errors.New("the same product is selected on more than one row")

	// ErrDeclined means the user answered no to a confirmation prompt; no
	// state changed and no request was issued.
	ErrDeclined = errors.New("action not confirmed")

	// ErrDocumentPosted means a mutation or re-post was attempted on a
	// posted document. Posted is terminal.
	ErrDocumentPosted = errors.New("document is posted and read-only")
)
