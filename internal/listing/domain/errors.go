package domain

import "errors"

var (
	ErrListingNotFound  = errors.New("listing not found")
	ErrForbidden        = errors.New("user not authorized to perform this action")
	ErrUnauthenticated  = errors.New("no authenticated user")
	ErrInvalidListing   = errors.New("invalid listing data")
	ErrInvalidVendor    = errors.New("unknown vendor type")
	ErrDuplicateListing = errors.New("user already has a listing of this vendor type")
)
