package models

import "fmt"

// IdentityError means a federated identity cannot be reconciled at all,
// typically because it lacks the email reconciliation key. It is terminal for
// that call; the caller should not retry with the same identity.
type IdentityError struct {
	UID    string
	Reason string
}

func (e *IdentityError) Error() string {
	if e.UID == "" {
		return fmt.Sprintf("identity: %s", e.Reason)
	}
	return fmt.Sprintf("identity %s: %s", e.UID, e.Reason)
}

// Provider errors are intentionally not wrapped into a local type: the
// identity provider client returns them verbatim so callers can inspect
// provider-specific codes (duplicate email, invalid password, ...).
