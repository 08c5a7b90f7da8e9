package api

import "fmt"

// CallError is the failure of a single backend call. Status == 0 means
// the request never got a response (transport error, timeout); any
// other value is the non-200 status the backend returned, with Body
// holding the raw response text.
type CallError struct {
	Op     string
	Status int
	Body   string
	Err    error
}

func (e *CallError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// Transport reports whether the failure happened before any response
// arrived.
func (e *CallError) Transport() bool { return e.Status == 0 }
