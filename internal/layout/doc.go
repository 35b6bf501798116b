// Package layout reads a facility description from YAML and builds the
// corresponding building, wiring every sensor to the given clock.
package layout
