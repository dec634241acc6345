// Package meals holds the transport-neutral meal types, the Service contract
// every backend implements and the session-wide saved meal list.
package meals
