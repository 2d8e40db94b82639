package podcast

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"resty.dev/v3"
)

//go:generate mockgen -source=spotify.go -destination=../mocks/podcast/mock_metadata.go -package=mock_podcast

// EpisodeInfo is the metadata fetched for one episode.
type EpisodeInfo struct {
	Name          string
	Description   string
	ShowName      string
	ShowPublisher string
	ReleaseDate   string
	ImageURL      string
}

// MetadataClient fetches episode metadata from a podcast platform.
type MetadataClient interface {
	EpisodeInfo(ctx context.Context, episodeID string) (*EpisodeInfo, error)
}

// ParseEpisodeURL extracts the episode ID from a Spotify episode URL such as
// https://open.spotify.com/episode/5pstuxpo2H56lqdZqvprKw?si=abc.
func ParseEpisodeURL(spotifyURL string) (string, error) {
	base, _, _ := strings.Cut(spotifyURL, "?")
	base = strings.TrimSuffix(base, "/")
	index := strings.LastIndex(base, "/")
	if index < 0 || index == len(base)-1 {
		return "", fmt.Errorf("invalid episode URL %q", spotifyURL)
	}
	return base[index+1:], nil
}

// SpotifyClient implements MetadataClient against the Spotify Web API using
// the client credentials flow.
type SpotifyClient struct {
	httpClient   *resty.Client
	tokenClient  *resty.Client
	clientID     string
	clientSecret string

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a new SpotifyClient.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	httpClient := resty.New()
	httpClient.SetBaseURL("https://api.spotify.com/v1")

	tokenClient := resty.New()
	tokenClient.SetBaseURL("https://accounts.spotify.com")

	return &SpotifyClient{
		httpClient:   httpClient,
		tokenClient:  tokenClient,
		clientID:     clientID,
		clientSecret: clientSecret,
	}
}

func (client *SpotifyClient) Close() error {
	if err := client.tokenClient.Close(); err != nil {
		return err
	}
	return client.httpClient.Close()
}

// SetBaseURLs overrides the API endpoints, used by tests.
func (client *SpotifyClient) SetBaseURLs(apiURL, accountsURL string) {
	client.httpClient.SetBaseURL(apiURL)
	client.tokenClient.SetBaseURL(accountsURL)
}

type spotifyTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type spotifyImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type spotifyEpisodeResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate string         `json:"release_date"`
	Images      []spotifyImage `json:"images"`
	Show        struct {
		Name      string `json:"name"`
		Publisher string `json:"publisher"`
	} `json:"show"`
}

func (client *SpotifyClient) token(ctx context.Context) (string, error) {
	client.mu.Lock()
	defer client.mu.Unlock()

	if client.accessToken != "" && time.Now().Before(client.tokenExpiry) {
		return client.accessToken, nil
	}

	var tokenResponse spotifyTokenResponse
	response, err := client.tokenClient.R().
		SetContext(ctx).
		SetBasicAuth(client.clientID, client.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&tokenResponse).
		Post("/api/token")
	if err != nil {
		return "", fmt.Errorf("tokenClient.Post() > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("token response error %d: %s", response.StatusCode(), response.String())
	}

	client.accessToken = tokenResponse.AccessToken
	client.tokenExpiry = time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second / 2)
	return client.accessToken, nil
}

// EpisodeInfo fetches one episode's metadata. The image reference is the
// largest image the platform offers.
func (client *SpotifyClient) EpisodeInfo(ctx context.Context, episodeID string) (*EpisodeInfo, error) {
	accessToken, err := client.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("client.token() > %w", err)
	}

	var episodeResponse spotifyEpisodeResponse
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&episodeResponse).
		Get("/episodes/" + episodeID)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Get() > %w", err)
	}
	if response.IsError() {
		return nil, fmt.Errorf("episode response error %d: %s", response.StatusCode(), response.String())
	}

	imageURL := ""
	if len(episodeResponse.Images) > 0 {
		images := append([]spotifyImage{}, episodeResponse.Images...)
		sort.Slice(images, func(i, j int) bool { return images[i].Width > images[j].Width })
		imageURL = images[0].URL
	}

	return &EpisodeInfo{
		Name:          episodeResponse.Name,
		Description:   episodeResponse.Description,
		ShowName:      episodeResponse.Show.Name,
		ShowPublisher: episodeResponse.Show.Publisher,
		ReleaseDate:   episodeResponse.ReleaseDate,
		ImageURL:      imageURL,
	}, nil
}
