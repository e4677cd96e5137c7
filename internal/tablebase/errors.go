package tablebase

import "errors"

var (
	ErrMalformedBoundaryTable = errors.New("malformed boundary table")
	ErrFingerprintOutOfRange  = errors.New("fingerprint out of range")
	ErrMalformedShard         = errors.New("malformed shard")
	ErrNoMatchingRecord       = errors.New("no matching record found")
	ErrGameOver               = errors.New("game is over")
)
