package models

import "time"

// SpotifySession is the persisted playback credential, stored as JSON in the
// durable store. An absent or unrefreshable session means "disconnected".
type SpotifySession struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresAt    int64  `json:"expiresAt"` // unix milliseconds
}

// ExpiryTime returns the absolute expiry of the access token.
func (s SpotifySession) ExpiryTime() time.Time {
	return time.UnixMilli(s.ExpiresAt)
}
