// Package devserver is a stand-in for the companion backend, serving the
// endpoints the client consumes with canned responses. It exists for local
// development and as the fixture for end-to-end tests; it is not a product
// surface.
package devserver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"procure-ai/client/internal/model"
)

// maxChatFormMemory bounds multipart parsing of chat requests.
const maxChatFormMemory = 32 << 20

// NewRouter builds the stub backend's routes.
func NewRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Post("/api/chat", handleChat)
	r.Post("/api/auth/login", handleLogin)
	r.Post("/api/auth/register", handleRegister)
	r.Post("/api/logRegistrationError", handleLogRegistrationError)

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleChat parses the multipart chat form and answers with a canned reply
// that echoes enough of the request to make end-to-end assertions useful.
func handleChat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxChatFormMemory); err != nil {
		respondWithError(w, http.StatusBadRequest, "expected a multipart form")
		return
	}

	question := r.FormValue("question")
	modelID := r.FormValue("model")
	if strings.TrimSpace(question) == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "question is required")
		return
	}
	if strings.TrimSpace(modelID) == "" {
		respondWithError(w, http.StatusUnprocessableEntity, "model is required")
		return
	}

	var fileNames []string
	if r.MultipartForm != nil {
		for _, f := range r.MultipartForm.File["files"] {
			fileNames = append(fileNames, f.Filename)
		}
	}

	text := fmt.Sprintf("I understand your procurement needs. You asked: %q.", question)
	if len(fileNames) > 0 {
		text += fmt.Sprintf(" I see you've uploaded: %s.", strings.Join(fileNames, ", "))
	}
	text += " Let me help you with that."

	respondWithJSON(w, http.StatusOK, model.LLMResponse{
		Text: text,
		SourceDocuments: []model.SourceDocument{{
			PageContent: "Sample procurement guideline excerpt.",
			Metadata: map[string]any{
				"model":          modelID,
				"source":         "devserver",
				"apiKeyProvided": r.FormValue("apiKey") != "",
			},
		}},
	})
}

type credentialsPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	respondWithJSON(w, http.StatusOK, stubUser(payload))
}

func handleRegister(w http.ResponseWriter, r *http.Request) {
	var payload credentialsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Email == "" || payload.Password == "" {
		respondWithError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	respondWithJSON(w, http.StatusCreated, stubUser(payload))
}

func handleLogRegistrationError(w http.ResponseWriter, r *http.Request) {
	var payload map[string]string
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
		slog.Info("Registration error reported", "error", payload["error"])
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func stubUser(payload credentialsPayload) model.User {
	name := payload.Name
	if name == "" {
		name = strings.SplitN(payload.Email, "@", 2)[0]
	}
	return model.User{ID: uuid.NewString(), Email: payload.Email, Name: name}
}

func respondWithError(w http.ResponseWriter, code int, detail string) {
	respondWithJSON(w, code, map[string]string{"detail": detail})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Error("Failed to marshal JSON response", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		slog.Error("Failed to write JSON response", "error", err)
	}
}
