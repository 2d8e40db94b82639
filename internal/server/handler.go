// Package server exposes the tutoring engine over JSON HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/WilliamWisten/japaneseLessons/internal/lesson"
	"github.com/WilliamWisten/japaneseLessons/internal/podcast"
	"github.com/WilliamWisten/japaneseLessons/internal/tutor"
)

const defaultUserID = "default_user"

// Handler routes lesson, progress and podcast requests to the engine.
type Handler struct {
	generator *lesson.Generator
	updater   *tutor.ProgressUpdater
	recorder  *tutor.MasteryRecorder
	processor *podcast.Processor
	library   *podcast.Library
}

// NewHandler creates a new Handler.
func NewHandler(
	generator *lesson.Generator,
	updater *tutor.ProgressUpdater,
	recorder *tutor.MasteryRecorder,
	processor *podcast.Processor,
	library *podcast.Library,
) *Handler {
	return &Handler{
		generator: generator,
		updater:   updater,
		recorder:  recorder,
		processor: processor,
		library:   library,
	}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /lesson", h.GetLesson)
	mux.HandleFunc("GET /podcast-lesson", h.GetPodcastLesson)
	mux.HandleFunc("POST /progress", h.SaveProgress)
	mux.HandleFunc("GET /podcast-episodes", h.ListPodcastEpisodes)
	mux.HandleFunc("POST /podcast-episodes", h.ProcessPodcastEpisode)
	mux.HandleFunc("POST /podcast-completions", h.CompletePodcastWords)
}

// GetLesson returns a frequency-based lesson for the user.
func (h *Handler) GetLesson(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	generated, err := h.generator.CreateLesson(r.Context(), userID)
	if errors.Is(err, lesson.ErrNoCandidates) {
		writeError(w, http.StatusNotFound, "no words available for a lesson")
		return
	}
	if err != nil {
		writeInternalError(w, "create lesson", err)
		return
	}
	writeJSON(w, http.StatusOK, generated)
}

// GetPodcastLesson returns a lesson built from one episode's vocabulary.
func (h *Handler) GetPodcastLesson(w http.ResponseWriter, r *http.Request) {
	episodeID := r.URL.Query().Get("episode_id")
	if episodeID == "" {
		writeError(w, http.StatusBadRequest, "missing episode_id parameter")
		return
	}
	userID := userIDFrom(r)
	generated, err := h.generator.CreatePodcastLesson(r.Context(), userID, episodeID)
	if errors.Is(err, lesson.ErrNoCandidates) {
		writeError(w, http.StatusNotFound, "no vocabulary available for this episode")
		return
	}
	if err != nil {
		writeInternalError(w, "create podcast lesson", err)
		return
	}
	writeJSON(w, http.StatusOK, generated)
}

type progressRequest struct {
	UserID  string          `json:"user_id"`
	Results []gradingResult `json:"results"`
}

type gradingResult struct {
	Word         string `json:"word"`
	QuestionType string `json:"question_type"`
	IsCorrect    bool   `json:"is_correct"`
}

type progressResponse struct {
	Status  string               `json:"status"`
	Results []wordProgressResult `json:"results"`
}

type wordProgressResult struct {
	Word     string `json:"word"`
	Mastered bool   `json:"mastered"`
}

// SaveProgress applies a batch of grading events for the user.
func (h *Handler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var request progressRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.UserID == "" {
		request.UserID = defaultUserID
	}

	response := progressResponse{Status: "success"}
	for _, result := range request.Results {
		questionType, err := tutor.ParseQuestionType(result.QuestionType)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("word %s: %v", result.Word, err))
			return
		}
		record, err := h.updater.Grade(r.Context(), request.UserID, result.Word, questionType, result.IsCorrect)
		if err != nil {
			writeInternalError(w, "save progress", err)
			return
		}
		response.Results = append(response.Results, wordProgressResult{
			Word:     record.Word,
			Mastered: record.Mastered,
		})
	}
	writeJSON(w, http.StatusOK, response)
}

type processEpisodeRequest struct {
	SpotifyURL string `json:"spotify_url"`
	Transcript string `json:"transcript"`
}

type processEpisodeResponse struct {
	Status          string `json:"status"`
	EpisodeID       string `json:"episode_id"`
	VocabularyCount int    `json:"vocabulary_count"`
}

// ProcessPodcastEpisode extracts and stores an episode's vocabulary.
func (h *Handler) ProcessPodcastEpisode(w http.ResponseWriter, r *http.Request) {
	var request processEpisodeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.SpotifyURL == "" {
		writeError(w, http.StatusBadRequest, "missing spotify_url parameter")
		return
	}
	if request.Transcript == "" {
		writeError(w, http.StatusBadRequest, "missing transcript parameter")
		return
	}

	result, err := h.processor.Process(r.Context(), request.SpotifyURL, request.Transcript)
	if err != nil {
		writeInternalError(w, "process podcast episode", err)
		return
	}
	writeJSON(w, http.StatusOK, processEpisodeResponse{
		Status:          "success",
		EpisodeID:       result.Episode.EpisodeID,
		VocabularyCount: len(result.Vocabulary),
	})
}

type episodeSummary struct {
	EpisodeID        string `json:"episode_id"`
	Name             string `json:"name"`
	Description      string `json:"description,omitempty"`
	ShowName         string `json:"show_name,omitempty"`
	ImageURL         string `json:"image_url,omitempty"`
	ReleaseDate      string `json:"release_date,omitempty"`
	TotalWords       int    `json:"total_words"`
	WordsEncountered int    `json:"words_encountered"`
	WordsMastered    int    `json:"words_mastered"`
}

type listEpisodesResponse struct {
	Podcasts []episodeSummary `json:"podcasts"`
}

// ListPodcastEpisodes returns every processed episode with the user's
// word coverage counts.
func (h *Handler) ListPodcastEpisodes(w http.ResponseWriter, r *http.Request) {
	userID := userIDFrom(r)
	summaries, err := h.library.ListEpisodes(r.Context(), userID)
	if err != nil {
		writeInternalError(w, "list podcast episodes", err)
		return
	}

	response := listEpisodesResponse{Podcasts: make([]episodeSummary, 0, len(summaries))}
	for _, summary := range summaries {
		item := episodeSummary{
			EpisodeID:        summary.Episode.EpisodeID,
			Name:             summary.Episode.Name,
			Description:      summary.Episode.Description,
			ShowName:         summary.Episode.ShowName,
			ReleaseDate:      summary.Episode.ReleaseDate,
			TotalWords:       summary.TotalWords,
			WordsEncountered: summary.WordsEncountered,
			WordsMastered:    summary.WordsMastered,
		}
		if summary.Episode.ImageURL.Valid {
			item.ImageURL = summary.Episode.ImageURL.String
		}
		response.Podcasts = append(response.Podcasts, item)
	}
	writeJSON(w, http.StatusOK, response)
}

type completeWordsRequest struct {
	UserID string   `json:"user_id"`
	Words  []string `json:"words"`
}

// CompletePodcastWords records mastery for words the user finished through a
// podcast lesson, bypassing the streak rule.
func (h *Handler) CompletePodcastWords(w http.ResponseWriter, r *http.Request) {
	var request completeWordsRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if request.UserID == "" {
		request.UserID = defaultUserID
	}
	if len(request.Words) == 0 {
		writeError(w, http.StatusBadRequest, "missing words parameter")
		return
	}

	for _, word := range request.Words {
		if err := h.recorder.RecordMastery(r.Context(), request.UserID, word, tutor.MasterySourcePodcast); err != nil {
			writeInternalError(w, "record mastery", err)
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func userIDFrom(r *http.Request) string {
	if userID := r.URL.Query().Get("user_id"); userID != "" {
		return userID
	}
	return defaultUserID
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeInternalError(w http.ResponseWriter, operation string, err error) {
	slog.Error("Request failed", slog.String("operation", operation), slog.Any("error", err))
	writeError(w, http.StatusInternalServerError, err.Error())
}
