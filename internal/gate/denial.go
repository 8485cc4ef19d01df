// Package gate holds the pure authorization and workflow decision rules.
// Every mutating operation has one decision function; each takes the acting
// identity plus pre-fetched state snapshots and returns nil or a *Denial.
// The gate never touches the store, so decisions are deterministic and
// trivially testable.
package gate

import "errors"

// Reason identifies why an operation was denied. The set is closed:
// handlers map each reason to an HTTP status and a user-facing message.
type Reason string

const (
	ReasonNotAuthenticated      Reason = "not_authenticated"
	ReasonNotAuthorized         Reason = "not_authorized"
	ReasonNotFound              Reason = "not_found"
	ReasonSelfActionForbidden   Reason = "self_action_forbidden"
	ReasonAlreadyEnrolled       Reason = "already_enrolled"
	ReasonNotEnrolled           Reason = "not_enrolled"
	ReasonFreeCourse            Reason = "free_course"
	ReasonInvalidInput          Reason = "invalid_input"
	ReasonDuplicateEmail        Reason = "duplicate_email"
	ReasonSubmissionsDisabled   Reason = "submissions_disabled"
	ReasonCheckoutSessionFailed Reason = "checkout_session_failed"
)

// Denial is a business-rule rejection. It is permanent: callers must not
// retry, and handlers must never log it as an operational error. Anything
// that is not a Denial (store failures and the like) is infrastructure.
type Denial struct {
	Reason  Reason
	Field   string // first violated field for invalid input, otherwise empty
	Message string
}

func (d *Denial) Error() string {
	return d.Message
}

// Deny creates a denial with the given reason and user-facing message
func Deny(reason Reason, message string) *Denial {
	return &Denial{Reason: reason, Message: message}
}

// DenyField creates an invalid-input denial naming the first violated field
func DenyField(field, message string) *Denial {
	return &Denial{Reason: ReasonInvalidInput, Field: field, Message: message}
}

// AsDenial unwraps err into a *Denial if it is one
func AsDenial(err error) (*Denial, bool) {
	var d *Denial
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
