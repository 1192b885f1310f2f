package remote

import "fmt"

// TransportError is a network-level failure: connection refused, timeout, or a body
// that could not be read.
type TransportError struct {
	Action string
	Err    error
}

func (e TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Action, e.Err)
}

func (e TransportError) Unwrap() error { return e.Err }

// ProtocolError means the backend answered with something that is not the expected JSON.
type ProtocolError struct {
	Action string
	Reason string
}

func (e ProtocolError) Error() string {
	return fmt.Sprintf("%s: protocol: %s", e.Action, e.Reason)
}

// RemoteError carries the message of a top-level {"error": ...} response.
type RemoteError struct {
	Action  string
	Message string
}

func (e RemoteError) Error() string {
	// Keep this to the backend's message; callers already know which action failed.
	return e.Message
}
