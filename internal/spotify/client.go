// Package spotify adapts the Spotify Web API to the narrow surface the
// playback service needs: find a track, start playing it.
package spotify

import (
	"context"

	spotifyapi "github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"
)

// Client talks to the Spotify Web API with a caller-supplied access token.
// It is stateless; token lifecycle lives with the playback service.
type Client struct{}

func NewClient() *Client {
	return &Client{}
}

func (c *Client) api(ctx context.Context, accessToken string) *spotifyapi.Client {
	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}))
	return spotifyapi.New(httpClient)
}

// TopTrackURI searches for the query and returns the top track's URI, or an
// empty string when nothing matches.
func (c *Client) TopTrackURI(ctx context.Context, accessToken, query string) (string, error) {
	result, err := c.api(ctx, accessToken).Search(ctx, query, spotifyapi.SearchTypeTrack, spotifyapi.Limit(1))
	if err != nil {
		return "", err
	}
	if result.Tracks == nil || len(result.Tracks.Tracks) == 0 {
		return "", nil
	}
	return string(result.Tracks.Tracks[0].URI), nil
}

// Play starts playback of the given track URI on the user's active device.
func (c *Client) Play(ctx context.Context, accessToken, uri string) error {
	return c.api(ctx, accessToken).PlayOpt(ctx, &spotifyapi.PlayOptions{
		URIs: []spotifyapi.URI{spotifyapi.URI(uri)},
	})
}
