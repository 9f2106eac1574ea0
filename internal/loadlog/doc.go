// Package loadlog writes an optional NDJSON audit trail of load, skip and
// reset events. Keys are recorded; values are not.
package loadlog
