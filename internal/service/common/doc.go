// Package common holds helpers shared by several services.
//
// It provides a FacilityService client with per-call timeouts and detection
// of the local operator (hostname/username) sent along with every command.
//
//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common
