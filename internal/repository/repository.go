package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

// ErrDuplicate is returned by Create operations when a storage-level
// uniqueness constraint rejects the row. The constraint is the source of
// truth for duplicate detection; callers translate this into their own
// conflict error.
var ErrDuplicate = errors.New("duplicate record")
