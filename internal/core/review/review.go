// Package review talks to the remote review service and turns every response
// into a typed Outcome.
package review

import (
	"errors"
	"fmt"
)

// User-visible texts substituted for a review when a cycle does not succeed.
const (
	EmptyResponseText = "⚠️ No review received or response was empty."
	FailureText       = "⚠️ Error reviewing code. Please try again."
)

// Kind discriminates review outcomes.
type Kind int

const (
	KindOK     Kind = iota // Text is the review body
	KindEmpty              // response arrived without a usable review
	KindFailed             // transport, status, timeout or decoding failure
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	case KindFailed:
		return "failed"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Outcome is the result of one review cycle. Text is always what should be
// shown in place of the review; Err holds diagnostics for logs only.
type Outcome struct {
	Kind Kind
	Text string
	Err  error
}

// Success wraps a review body. The body is kept verbatim, untrimmed.
func Success(body string) Outcome {
	return Outcome{Kind: KindOK, Text: body}
}

// Empty reports a response that carried no usable review.
func Empty(err error) Outcome {
	return Outcome{Kind: KindEmpty, Text: EmptyResponseText, Err: err}
}

// Failed reports a request that did not produce a response body.
func Failed(err error) Outcome {
	return Outcome{Kind: KindFailed, Text: FailureText, Err: err}
}

// OK reports whether the outcome carries a real review.
func (o Outcome) OK() bool {
	return o.Kind == KindOK
}

// Sentinel errors describing why a response was rejected.
var (
	ErrEmptyBody        = errors.New("response body is empty")
	ErrNotString        = errors.New("response body is not a string")
	ErrMalformedBody    = errors.New("response body is malformed")
	ErrResponseTooLarge = errors.New("response body exceeds size limit")
)

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Body       string // truncated excerpt
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("review service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("review service returned status %d: %s", e.StatusCode, e.Body)
}
