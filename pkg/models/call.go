package models

// FailureKind tells why a call could not be placed
type FailureKind string

const (
	FailureNone               FailureKind = ""
	FailureInvalidDestination FailureKind = "invalid-destination"
	FailureProviderRejected   FailureKind = "provider-rejected"
	FailureNetworkError       FailureKind = "network-error"
)

// CallResult is the outcome of a single call placement attempt.
// CallSID is only set when Failure is FailureNone.
type CallResult struct {
	CallSID string
	Failure FailureKind
	Err     error
}

// Placed reports whether the provider accepted the call
func (r CallResult) Placed() bool {
	return r.Failure == FailureNone && r.CallSID != ""
}

// Outcome is what a submission action reports back to the form handler
type Outcome struct {
	Succeeded bool
	Call      *CallResult
}
