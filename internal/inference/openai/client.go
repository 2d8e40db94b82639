// Package openai implements the inference.Client interface against the OpenAI
// chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"

	"github.com/WilliamWisten/japaneseLessons/internal/inference"
)

type Client struct {
	httpClient  *resty.Client
	model       string
	retryConfig inference.RetryConfig
}

func NewClient(apiKey, model string, retryConfig inference.RetryConfig) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:  client,
		model:       model,
		retryConfig: retryConfig,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (client *Client) SetBaseURL(baseURL string) {
	client.httpClient.SetBaseURL(baseURL)
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client *Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// rateLimitedError carries the server-supplied retry delay from a 429 response.
type rateLimitedError struct {
	retryAfter time.Duration
	body       string
}

func (e *rateLimitedError) Error() string {
	return fmt.Sprintf("response error 429: %s", e.body)
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var rateLimited *rateLimitedError
	if errors.As(err, &rateLimited) {
		return true
	}

	// Retry on JSON parsing errors as they might be due to incomplete responses
	errStr := err.Error()
	if strings.Contains(errStr, "json.Unmarshal") || strings.Contains(errStr, "unexpected end of JSON input") {
		return true
	}

	// Retry on network-related errors
	if strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Retry on 5xx errors (server errors)
	if strings.Contains(errStr, "response error 5") {
		return true
	}

	return false
}

// retryDelay honors a server-supplied Retry-After delay for rate-limited calls
// and falls back to capped exponential backoff otherwise.
func (client *Client) retryDelay(n uint, err error, config *retry.Config) time.Duration {
	var rateLimited *rateLimitedError
	if errors.As(err, &rateLimited) && rateLimited.retryAfter > 0 {
		return rateLimited.retryAfter
	}

	backoff := client.retryConfig.InitialBackoff << n
	if backoff > client.retryConfig.MaxBackoff {
		backoff = client.retryConfig.MaxBackoff
	}
	return backoff
}

func (client *Client) withRetry(ctx context.Context, call func() error) error {
	return retry.Do(
		func() error {
			if err := call(); err != nil {
				if !isRetryableError(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.retryConfig.MaxRetries+1),
		retry.DelayType(client.retryDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Info("Retrying OpenAI API call",
				"attempt", n+1,
				"error", err)
		}),
	)
}

// complete sends one chat completion request and returns the model output text.
func (client *Client) complete(ctx context.Context, temperature float32, messages []Message) (string, error) {
	requestBody := ChatCompletionRequest{
		Model:       client.model,
		Temperature: temperature,
		Messages:    messages,
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.StatusCode() == 429 {
		return "", &rateLimitedError{
			retryAfter: parseRetryAfter(response.Header().Get("Retry-After")),
			body:       response.String(),
		}
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return "", fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)
	return content, nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 0
	}
	seconds, err := strconv.Atoi(header)
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// ExtractVocabulary implements the inference.Client interface
func (client *Client) ExtractVocabulary(
	ctx context.Context,
	params inference.ExtractVocabularyRequest,
) (inference.ExtractVocabularyResponse, error) {
	var result inference.ExtractVocabularyResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.extractVocabulary(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.ExtractVocabularyResponse{}, err
	}
	return result, nil
}

func (client *Client) extractVocabulary(
	ctx context.Context,
	params inference.ExtractVocabularyRequest,
) (inference.ExtractVocabularyResponse, error) {
	prompt := fmt.Sprintf(`As a Japanese language expert, analyze this short transcript section and create a vocabulary list.

Input transcript section:
`+"```"+`
%s
`+"```"+`

Create a JSON array containing EVERY word and phrase from the transcript above. Include:
- Individual words (e.g., こんにちは, 仕事)
- Particles (は, が, を, etc.)
- Verb forms (e.g., します)
- Adjectives (e.g., いい)
- Common phrases (e.g., よろしく)

Format your response as a JSON array like this:
[
    {
        "word": "こんにちは",
        "reading": "こんにちは",
        "meaning": "hello, good afternoon",
        "part_of_speech": "greeting",
        "importance_level": "1",
        "importance_reason": "Essential greeting",
        "context": "%s"
    }
]

Important: Return ONLY the JSON array with complete entries.`, params.Chunk, params.Chunk)

	content, err := client.complete(ctx, 0.7, []Message{
		{Role: RoleUser, Content: prompt},
	})
	if err != nil {
		return inference.ExtractVocabularyResponse{}, err
	}

	arrayContent, err := extractJSONArray(content)
	if err != nil {
		return inference.ExtractVocabularyResponse{}, fmt.Errorf("extractJSONArray > %w", err)
	}

	var entries []inference.VocabularyEntry
	if err := json.NewDecoder(strings.NewReader(arrayContent)).Decode(&entries); err != nil {
		slog.Default().Error("Failed to parse OpenAI vocabulary response as JSON",
			"chunk", params.Chunk,
			"error", err)
		return inference.ExtractVocabularyResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", arrayContent, err)
	}
	return inference.ExtractVocabularyResponse{Entries: entries}, nil
}

// GenerateLesson implements the inference.Client interface
func (client *Client) GenerateLesson(
	ctx context.Context,
	params inference.GenerateLessonRequest,
) (inference.GenerateLessonResponse, error) {
	var result inference.GenerateLessonResponse
	if err := client.withRetry(ctx, func() error {
		response, err := client.generateLesson(ctx, params)
		if err != nil {
			return err
		}
		result = response
		return nil
	}); err != nil {
		return inference.GenerateLessonResponse{}, err
	}
	return result, nil
}

func (client *Client) generateLesson(
	ctx context.Context,
	params inference.GenerateLessonRequest,
) (inference.GenerateLessonResponse, error) {
	if len(params.Words) == 0 {
		return inference.GenerateLessonResponse{}, nil
	}

	wordList := make([]string, 0, len(params.Words))
	for _, word := range params.Words {
		wordList = append(wordList, fmt.Sprintf("%s (%s) - %s", word.Word, word.Reading, word.Meaning))
	}

	var prompt string
	if params.FromPodcast {
		prompt = fmt.Sprintf(podcastLessonPrompt, strings.Join(wordList, ", "))
	} else {
		prompt = fmt.Sprintf(lessonPrompt, strings.Join(wordList, ", "))
	}

	content, err := client.complete(ctx, 0.7, []Message{
		{Role: RoleUser, Content: prompt},
	})
	if err != nil {
		return inference.GenerateLessonResponse{}, err
	}

	objectContent, err := extractJSONObject(content)
	if err != nil {
		return inference.GenerateLessonResponse{}, fmt.Errorf("extractJSONObject > %w", err)
	}

	var lesson inference.GenerateLessonResponse
	if err := json.NewDecoder(strings.NewReader(objectContent)).Decode(&lesson); err != nil {
		slog.Default().Error("Failed to parse OpenAI lesson response as JSON",
			"wordCount", len(params.Words),
			"error", err)
		return inference.GenerateLessonResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", objectContent, err)
	}
	return lesson, nil
}

const lessonPrompt = `Create a Japanese lesson with multiple-choice questions using these words.
For each word, create both a meaning question and a reading question.

Words to learn:
%s

Return a JSON object with this structure:
{
    "exercises": [
        {
            "type": "multiple_choice",
            "word": "<japanese_word>",
            "reading": "<reading>",
            "meaning": "<english_meaning>",
            "question": "<question in English>",
            "options": ["<option1>", "<option2>", "<option3>", "<option4>"],
            "correct": "<correct answer>"
        }
    ]
}

For each word, create two types of questions:
1. Meaning question: "What does [japanese_word] mean?"
2. Reading question:
   - If the word contains kanji: "How do you read [japanese_word]?" with hiragana options
   - If the word is only hiragana: "How do you write [japanese_word] in romaji?" with romaji options`

const podcastLessonPrompt = `Create a Japanese lesson based on these vocabulary items from a podcast.
For each word, create both a meaning question and a reading question.

Words to learn:
%s

Return a JSON object with this structure:
{
    "vocabulary": [
        {
            "word": "<japanese>",
            "reading": "<hiragana>",
            "romaji": "<romaji>",
            "meaning": "<english>",
            "context": "<japanese sentence from transcript>",
            "context_en": "<english translation>",
            "explanation": "<usage explanation>"
        }
    ],
    "exercises": [
        {
            "type": "multiple_choice",
            "word": "<japanese_word>",
            "reading": "<hiragana>",
            "romaji": "<romaji>",
            "meaning": "<english_meaning>",
            "question": "<question in English>",
            "options": ["<option1>", "<option2>", "<option3>", "<option4>"],
            "correct": "<correct answer>",
            "context": "<example sentence>",
            "context_en": "<english translation>"
        }
    ]
}

For each word, create two types of questions:
1. Meaning question: "What does [japanese_word] mean?"
2. Reading question: "How do you pronounce [japanese_word]?"
   - Always use romaji for pronunciation answers
   - Include both hiragana and romaji in the question data

IMPORTANT RULES:
1. Each question MUST have exactly 4 options
2. The correct answer MUST be included in the options
3. For meaning questions, use English words as options
4. For reading questions, use ONLY romaji options
5. Always include the Japanese word in the question
6. Include relevant example sentences from the transcript when possible
7. Provide clear, natural English translations`
