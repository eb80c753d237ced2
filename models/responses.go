package models

import "time"

// LoginResponse returns the session token plus the reconciled local user.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// ReconcileReport counts outcomes of a bulk reconciliation run. Per-account
// failures are folded into Failed rather than aborting the batch.
type ReconcileReport struct {
	Created  int `json:"created"`
	Existing int `json:"existing"`
	Failed   int `json:"failed"`
}

// SyncUpdatesResponse carries records modified since the client's last sync.
type SyncUpdatesResponse struct {
	Tasks []Task `json:"tasks"`
	Users []User `json:"users"`
}

// SuggestSubtasksResponse is the assistant's proposed breakdown.
type SuggestSubtasksResponse struct {
	Suggestions []string  `json:"suggestions"`
	GeneratedAt time.Time `json:"generated_at"`
}
