// Package repository implements data access over database/sql. This file
// defines the sentinel errors shared across repositories. Handlers match on
// these with errors.Is to pick a status code, so repositories must map
// driver-level failures onto them instead of leaking sql errors upward.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update collides with the
// unique index on users.email. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrReportNotFound is returned when a waste report lookup matches no row.
var ErrReportNotFound = errors.New("waste report not found")
