package domain

import "errors"

// ErrClientClosed is returned synchronously by NewServer when the client
// handle it was called on has already been closed.
var ErrClientClosed = errors.New("client closed")

// ErrUnknownHost is logged (never returned) when a VM termination callback
// arrives for a host the service never registered. Should be unreachable
// under correct bookkeeping.
var ErrUnknownHost = errors.New("unknown host")
