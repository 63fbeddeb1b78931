// Package store persists cost configuration, shared estimates and leads in SQLite.
package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalid is returned when a record fails validation before it is written.
	ErrInvalid = errors.New("invalid record")
)

// sqliteTime matches the CURRENT_TIMESTAMP text format so datetime() ordering works.
const sqliteTime = "2006-01-02 15:04:05"

var now = func() time.Time { return time.Now().UTC() }

func timestamp() string { return now().Format(sqliteTime) }
