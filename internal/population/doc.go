// Package population supplies the region populations that get apportioned:
// the bundled 2013 census table, a YAML loader for custom tables, and a
// read-only in-memory store shared by the API handlers.
package population
