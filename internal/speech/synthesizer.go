// Package speech provides the speech synthesis collaborator used to attach
// audio references to catalog entries.
package speech

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/WilliamWisten/japaneseLessons/internal/config"
)

//go:generate mockgen -source=synthesizer.go -destination=../mocks/speech/mock_synthesizer.go -package=mock_speech

// Synthesizer produces an audio reference for a word. The second return value
// reports whether a reference was produced: synthesis failures are absent, not
// fatal, so ranking never breaks on a missing voice.
type Synthesizer interface {
	Synthesize(ctx context.Context, word string) (string, bool)
}

// AudioStore persists synthesized audio and returns a stable reference to it.
type AudioStore interface {
	Save(ctx context.Context, name string, mp3 []byte) (string, error)
}

// GoogleClient synthesizes audio through the Google Cloud Text-to-Speech REST API.
type GoogleClient struct {
	httpClient   *resty.Client
	store        AudioStore
	voiceName    string
	languageCode string
	speakingRate float64
	retryOptions []retry.Option
}

// NewGoogleClient creates a new GoogleClient.
func NewGoogleClient(cfg config.SpeechConfig, store AudioStore) *GoogleClient {
	client := resty.New()
	client.SetBaseURL("https://texttospeech.googleapis.com/v1")
	client.SetQueryParam("key", cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")

	return &GoogleClient{
		httpClient:   client,
		store:        store,
		voiceName:    cfg.VoiceName,
		languageCode: cfg.LanguageCode,
		speakingRate: cfg.SpeakingRate,
		retryOptions: []retry.Option{
			retry.Attempts(3),
			retry.Delay(time.Second),
		},
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (client *GoogleClient) SetBaseURL(baseURL string) {
	client.httpClient.SetBaseURL(baseURL)
}

// SetRetryOptions overrides retry behavior. Used by tests to avoid real delays.
func (client *GoogleClient) SetRetryOptions(options ...retry.Option) {
	client.retryOptions = options
}

func (client *GoogleClient) Close() error {
	return client.httpClient.Close()
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize generates audio for a word and stores it. It never fails the
// caller: any error is logged and reported as an absent reference.
func (client *GoogleClient) Synthesize(ctx context.Context, word string) (string, bool) {
	audioURL, err := client.synthesize(ctx, word)
	if err != nil {
		slog.Default().Warn("Speech synthesis failed, continuing without audio",
			"word", word,
			"error", err)
		return "", false
	}
	return audioURL, true
}

func (client *GoogleClient) synthesize(ctx context.Context, word string) (string, error) {
	var body synthesizeRequest
	body.Input.Text = word
	body.Voice.LanguageCode = client.languageCode
	body.Voice.Name = client.voiceName
	body.AudioConfig.AudioEncoding = "MP3"
	body.AudioConfig.SpeakingRate = client.speakingRate

	var audioContent string
	options := append([]retry.Option{retry.Context(ctx), retry.LastErrorOnly(true)}, client.retryOptions...)
	if err := retry.Do(func() error {
		response, err := client.httpClient.R().
			SetContext(ctx).
			SetBody(body).
			SetResult(&synthesizeResponse{}).
			Post("/text:synthesize")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
		}
		responseBody := response.Result().(*synthesizeResponse)
		if responseBody == nil || responseBody.AudioContent == "" {
			return fmt.Errorf("empty audio content: %s", response.String())
		}
		audioContent = responseBody.AudioContent
		return nil
	}, options...); err != nil {
		return "", err
	}

	mp3, err := base64.StdEncoding.DecodeString(audioContent)
	if err != nil {
		return "", fmt.Errorf("base64.DecodeString > %w", err)
	}

	name := base64.URLEncoding.EncodeToString([]byte(word)) + ".mp3"
	audioURL, err := client.store.Save(ctx, name, mp3)
	if err != nil {
		return "", fmt.Errorf("store.Save > %w", err)
	}
	return audioURL, nil
}
