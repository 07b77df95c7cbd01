// Package sqliteexternal registers the CGO SQLite driver
// (github.com/mattn/go-sqlite3) for the gedcom index.
//
// It is only compiled with the cgo_sqlite build tag:
//
//	CGO_ENABLED=1 go build -tags cgo_sqlite ./cmd/gedcom
//
// Without the tag, core/sqlite uses the pure Go modernc.org/sqlite driver
// and this package is empty. The CGO driver is faster on large trees but
// gives up cross-compilation and single-binary deployment.
package sqliteexternal
