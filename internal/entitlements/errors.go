package entitlements

import "errors"

var (
	// ErrUnavailable means the ledger could not be queried. It is distinct
	// from "no entitlement": an infrastructure failure must never read as a
	// denial.
	ErrUnavailable = errors.New("payment ledger unavailable")

	// ErrInvalidInput marks malformed requests.
	ErrInvalidInput = errors.New("invalid input")
)
