package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Sources, stores and clients return
// these (optionally wrapped) so services can translate them into domain errors.
//
// - ErrNotFound: entity does not exist in store
// - ErrUnavailable: upstream service or resource temporarily unavailable
// - ErrBadData: upstream answered with a payload that could not be decoded
var (
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
	ErrBadData     = errors.New("bad data")
)
