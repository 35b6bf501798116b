// Package client implements the bms-ctl commands.
//
// Each command connects to the simulation server, issues one request and
// prints the resulting snapshot. Watch keeps polling and logs alert changes.
package client
