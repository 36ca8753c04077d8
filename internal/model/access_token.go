package model

// AccessToken is the server-side record behind a bearer token. A user may
// hold any number of them at once; logout removes them all.
type AccessToken struct {
	ID        string `json:"id"`
	UserID    int64  `json:"user_id"`
	Ctime     int64  `json:"ctime"`
	ExpiresAt int64  `json:"expires_at"`
}
