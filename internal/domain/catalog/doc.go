// Package catalog holds the static app and command catalogs.
//
// Both catalogs are read-only after construction and keyed for O(1)
// lookup. The command catalog can be replaced from a YAML, TOML or JSON
// file at startup.
package catalog
