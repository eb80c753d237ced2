package models

// FederatedIdentity is an account held by the external identity provider.
// The core never creates or deletes one on the read path; provisioning and
// teardown flows go through the IdentityProvider interface.
type FederatedIdentity struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}
