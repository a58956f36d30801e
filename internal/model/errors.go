// Package model holds the restaurant domain types and the rules that do
// not need storage: status machines, opening hours, delivery zone matching,
// table layout checks and notice scheduling.
package model

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrDuplicateLabel    = errors.New("duplicate table label")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrInvalidHours      = errors.New("invalid opening hours")
	ErrNoMembership      = errors.New("no restaurant membership")
)
