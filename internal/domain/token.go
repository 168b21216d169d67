package domain

import "time"

// Identity is the authenticated caller, as carried by a verified token.
type Identity struct {
	UserID string
	Email  string
}

// AccessDetails is what the auth middleware attaches to a request.
type AccessDetails struct {
	Identity
	AccessUuid string
	ExpiresAt  time.Time
}

type RefreshResult struct {
	AccessToken string `json:"token"`
}
