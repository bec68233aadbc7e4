package api

import "fmt"

// TransportError reports a network or HTTP level failure while talking to
// the platform.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling %s: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError reports an ok=false response from the platform.
type UpstreamError struct {
	Description string
	ErrorCode   int
}

func (e *UpstreamError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("telegram api error %d: %s", e.ErrorCode, e.Description)
	}
	return fmt.Sprintf("telegram api error: %s", e.Description)
}
