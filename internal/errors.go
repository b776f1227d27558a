package internal

import "fmt"

// StoreError represents errors accessing the persistent state store
type StoreError struct {
	Path string
	Op   string // "open", "load", "save", "reset"
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// TransportError represents a failed exchange with the assistant backend.
// Status is zero when the request never reached the backend.
type TransportError struct {
	Endpoint string
	Status   int
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport error [%d] %s: %v", e.Status, e.Endpoint, e.Err)
	}
	return fmt.Sprintf("transport error %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PageError represents errors loading or parsing a host page
type PageError struct {
	URL string
	Op  string // "fetch", "parse"
	Err error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page error: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
