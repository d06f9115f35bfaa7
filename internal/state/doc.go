// Package state holds the console's application state and the pure
// reduction pipeline that produces the next state from the current state
// and an Action.
//
// Nothing in this package performs I/O. Reduce is a pure function: given the
// same state and action it always returns the same next state, and it never
// mutates its input. Slices carried by an Action are copied into the next
// state so callers cannot alias them.
//
// # Connection phases
//
// Phase is a closed enumeration tracking device-facing progress:
//
//	NOT_CONFIGURED → FETCHED_CONFIG → SCANNING → SCANNING_COMPLETE
//	                                  → SAVING → CONNECTED | CONNECTION_ERROR
//
// Only specific action variants move the phase; the mapping is an explicit
// table in reducer.go.
//
// # Field validation
//
// Each text field (passkey, deviceName, webhook) has a FieldRule with an
// inclusive maximum length. Valid is a pure function of the value. The
// error label helper keeps the device firmware's boundary behaviour: a value
// whose length equals the maximum is valid, but if it were ever shown as an
// error it would be labelled "is too long".
package state
