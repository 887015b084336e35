package workflow

import (
	"errors"
	"fmt"

	"github.com/tailored-agentic-units/resources/resource"
)

var ErrSubmissionFailed = errors.New("submission failed")

// SubmissionError is passed to Submission.Reject when a submission does not
// succeed. Code and Message carry the transport failure when there is one;
// Err is set when the submission was cancelled or could not be issued.
type SubmissionError struct {
	Form    string
	Kind    resource.Kind
	Request resource.RequestKind
	Code    string
	Message string
	Err     error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s %s: %v", e.Kind.Singular(), verb(e.Request), e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s %s failed: %s", e.Kind.Singular(), verb(e.Request), e.Message)
	default:
		return fmt.Sprintf("%s %s failed", e.Kind.Singular(), verb(e.Request))
	}
}

// Unwrap returns Err, or ErrSubmissionFailed for a transport failure.
func (e *SubmissionError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrSubmissionFailed
}
