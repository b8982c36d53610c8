package http

import (
	"context"
	"encoding/json"
	"net/http"

	"clubcine-quiz/internal/app"
	"clubcine-quiz/internal/domain"
	"go.uber.org/zap"
)

// preferredSchemeHeader is the client hint carrying the browser's color scheme preference.
const preferredSchemeHeader = "Sec-CH-Prefers-Color-Scheme"

// QuestionReloader triggers one more attempt at loading the question set.
type QuestionReloader interface {
	Load(ctx context.Context) error
	Source() string
}

// APIHandler serves the JSON endpoints next to the websocket channel.
type APIHandler struct {
	quiz     *app.QuizService
	themes   *app.ThemeService
	reloader QuestionReloader
	log      *zap.Logger
}

func NewAPIHandler(quiz *app.QuizService, themes *app.ThemeService, reloader QuestionReloader, log *zap.Logger) *APIHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &APIHandler{quiz: quiz, themes: themes, reloader: reloader, log: log}
}

// Register mounts the API routes and the websocket endpoint on mux.
func (h *APIHandler) Register(mux *http.ServeMux, ws *WSHandler) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ws", ws.ServeWS)
	mux.HandleFunc("GET /api/sessions/{id}", h.getSession)
	mux.HandleFunc("POST /api/questions/reload", h.reloadQuestions)
	mux.HandleFunc("GET /api/theme", h.getTheme)
	mux.HandleFunc("POST /api/theme/toggle", h.toggleTheme)
}

type themeResponse struct {
	Client string       `json:"client"`
	Theme  domain.Theme `json:"theme"`
}

func (h *APIHandler) getSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.quiz.View(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, view)
}

func (h *APIHandler) reloadQuestions(w http.ResponseWriter, r *http.Request) {
	if err := h.reloader.Load(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "loaded", "source": h.reloader.Source()})
}

func (h *APIHandler) getTheme(w http.ResponseWriter, r *http.Request) {
	client, ok := h.clientID(w, r)
	if !ok {
		return
	}
	theme, err := h.themes.Current(r.Context(), client, preferredTheme(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, themeResponse{Client: client, Theme: theme})
}

func (h *APIHandler) toggleTheme(w http.ResponseWriter, r *http.Request) {
	client, ok := h.clientID(w, r)
	if !ok {
		return
	}
	theme, err := h.themes.Toggle(r.Context(), client, preferredTheme(r))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, themeResponse{Client: client, Theme: theme})
}

func (h *APIHandler) clientID(w http.ResponseWriter, r *http.Request) (string, bool) {
	client := r.URL.Query().Get("client")
	if client == "" {
		h.writeJSON(w, http.StatusBadRequest, errorPayload{Code: "bad_request", Message: "missing client"})
		return "", false
	}
	return client, true
}

func preferredTheme(r *http.Request) domain.Theme {
	theme, err := domain.ParseTheme(r.Header.Get(preferredSchemeHeader))
	if err != nil {
		return ""
	}
	return theme
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	payload, status := toErrorPayload(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("code", payload.Code), zap.Error(err))
	}
	h.writeJSON(w, status, payload)
}

func (h *APIHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Debug("write response failed", zap.Error(err))
	}
}
