// Package facility contains the containment model of a building.
//
// A Building stacks Floors, a Floor hosts Rooms within its area budget and a
// Room carries at most one sensor of each kind. All mutations validate first
// and commit only when every check passes.
package facility
