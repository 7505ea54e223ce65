// Package repository holds the in-memory stores for the catalog and the
// account directory.  Stores own the lifetime of their records; callers
// receive shared pointers and mutate them only through the records' own
// methods, which carry their own locks.
package repository

import "github.com/iliyamo/cinema-box-office/internal/apperror"

func notFound(what, key string) error {
	return apperror.New(apperror.NotFound, "%s %q not found", what, key)
}

func exists(what, key string) error {
	return apperror.New(apperror.Conflict, "%s %q already exists", what, key)
}
