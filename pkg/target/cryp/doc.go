// Package cryp wraps the AES peripheral behind a capability interface.
//
// The Adapter never raises: every peripheral fault, busy state or violated
// precondition becomes a Failure outcome for the caller to interpret.
package cryp
