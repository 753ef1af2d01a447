// Package oids defines the object identifiers used by package pkix, and
// registers their names with package der, so they print as e.g.
// "2.5.4.3 (commonName)".
package oids

//go:generate go run github.com/gemalto/der-go/cmd/dergen -i oids.toml -o oids_generated.go -p oids
