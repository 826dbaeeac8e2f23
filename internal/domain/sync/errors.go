package sync

import "errors"

// Error taxonomy for the catalog sync engine.
//
// Transport and remote errors abort the current category's paging only.
// Resolution and persistence errors skip a single item. Anything raised
// outside those boundaries is run-fatal and clears the active flag so a
// new run can start.
var (
	// ErrTransport wraps network-level failures (connect, timeout) talking
	// to the remote catalog.
	ErrTransport = errors.New("sync: transport error")
	// ErrRemote wraps non-2xx responses and malformed payloads from the
	// remote catalog.
	ErrRemote = errors.New("sync: remote error")
	// ErrResolution indicates name/grade resolution produced no usable name.
	ErrResolution = errors.New("sync: resolution error")
	// ErrPersistence wraps store write failures for a single item.
	ErrPersistence = errors.New("sync: persistence error")
)
