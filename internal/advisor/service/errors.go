package service

import "errors"

var (
	// ErrEmptyMessage rejects chat messages that are empty or whitespace.
	ErrEmptyMessage = errors.New("message is required")

	// ErrInvalidQuote rejects quote updates missing an OHLC field.
	ErrInvalidQuote = errors.New("quote is missing a required OHLC field")

	// ErrStockNotFound reports an unknown instrument symbol; non-fatal,
	// the caller decides whether to retry or ignore.
	ErrStockNotFound = errors.New("stock not found")

	// ErrUserNotFound reports an unknown notification owner.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotificationNotFound reports an unknown notification id for the
	// calling user.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrConcurrentUpdate reports that a concurrent quote for the same
	// symbol won the read-modify-write race; the transaction was rolled
	// back and the caller may retry on the next tick.
	ErrConcurrentUpdate = errors.New("stock was updated concurrently")
)
