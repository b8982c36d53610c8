package http

import (
	"errors"
	"net/http"

	"clubcine-quiz/internal/domain"
)

type errorPayload struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Feedback string `json:"feedback,omitempty"`
}

type errorMapping struct {
	target   error
	code     string
	status   int
	feedback string
}

var errorMappings = []errorMapping{
	{domain.ErrIncompleteAnswers, "incomplete_answers", http.StatusUnprocessableEntity, "Veuillez répondre à toutes les questions avant de soumettre."},
	{domain.ErrAlreadySubmitted, "already_submitted", http.StatusConflict, "Partie déjà soumise. Lancez une nouvelle partie pour rejouer."},
	{domain.ErrNotYetSubmitted, "not_yet_submitted", http.StatusConflict, "Soumettez d'abord vos réponses."},
	{domain.ErrInvalidPosition, "invalid_position", http.StatusBadRequest, ""},
	{domain.ErrInvalidChoice, "invalid_choice", http.StatusBadRequest, ""},
	{domain.ErrSessionNotFound, "session_not_found", http.StatusNotFound, ""},
	{domain.ErrInvalidTheme, "invalid_theme", http.StatusBadRequest, ""},
}

// toErrorPayload maps domain errors to a stable wire code and an HTTP status.
func toErrorPayload(err error) (errorPayload, int) {
	var loadErr *domain.LoadError
	if errors.As(err, &loadErr) {
		return errorPayload{
			Code:     "load_error",
			Message:  err.Error(),
			Feedback: "Impossible de charger les questions (" + loadErr.Err.Error() + ").",
		}, http.StatusServiceUnavailable
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return errorPayload{Code: m.code, Message: err.Error(), Feedback: m.feedback}, m.status
		}
	}
	return errorPayload{Code: "internal", Message: err.Error()}, http.StatusInternalServerError
}
