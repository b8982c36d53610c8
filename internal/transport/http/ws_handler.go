package http

import (
	"encoding/json"
	"net/http"

	"clubcine-quiz/internal/app"
	"clubcine-quiz/internal/domain"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	feedbackStarted   = "Répondez aux questions puis cliquez sur Soumettre."
	feedbackSubmitted = "Réponses soumises. Cliquez sur « Voir les réponses » pour afficher les bonnes."
)

// WSHandler is the presentation command channel: one connection drives one game session.
type WSHandler struct {
	service  *app.QuizService
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, log *zap.Logger) *WSHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WSHandler{
		service: service,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Position int `json:"position"`
	Choice   int `json:"choice"`
}

type positionPayload struct {
	Position int `json:"position"`
}

type roundPayload struct {
	domain.RoundView
	Feedback string `json:"feedback,omitempty"`
}

type outcomePayload struct {
	Position int            `json:"position"`
	Outcome  domain.Outcome `json:"outcome"`
}

type submittedPayload struct {
	domain.SubmitResult
	View     domain.RoundView `json:"view"`
	Feedback string           `json:"feedback"`
}

type revealedPayload struct {
	Revealed bool             `json:"revealed"`
	View     domain.RoundView `json:"view"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets, starts a round and relays commands
// (start, select, submit, toggleReveal, outcome) to the quiz service.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", zap.Error(err))
				// keep draining so the reader never blocks
				for range send {
				}
				return
			}
		}
	}()

	sendError := func(err error) {
		payload, _ := toErrorPayload(err)
		send <- outboundMessage[any]{Type: "error", Payload: payload}
	}

	var sessionID string
	start := func() {
		view, err := h.service.Start(ctx, sessionID)
		if err != nil {
			sendError(err)
			return
		}
		sessionID = view.SessionID
		send <- outboundMessage[any]{Type: "round", Payload: roundPayload{RoundView: view, Feedback: feedbackStarted}}
	}
	defer func() {
		h.service.End(ctx, sessionID)
	}()

	start()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if inbound.Type != "start" && sessionID == "" {
			sendError(domain.ErrSessionNotFound)
			continue
		}

		switch inbound.Type {
		case "start":
			start()
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: "invalid select payload"}}
				continue
			}
			outcome, err := h.service.Select(ctx, sessionID, payload.Position, payload.Choice)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "selected", Payload: outcomePayload{Position: payload.Position, Outcome: outcome}}
		case "submit":
			result, view, err := h.service.Submit(ctx, sessionID)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "submitted", Payload: submittedPayload{SubmitResult: result, View: view, Feedback: feedbackSubmitted}}
		case "toggleReveal":
			revealed, view, err := h.service.ToggleReveal(ctx, sessionID)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "revealed", Payload: revealedPayload{Revealed: revealed, View: view}}
		case "outcome":
			var payload positionPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: "invalid outcome payload"}}
				continue
			}
			outcome, err := h.service.Outcome(ctx, sessionID, payload.Position)
			if err != nil {
				sendError(err)
				continue
			}
			send <- outboundMessage[any]{Type: "outcome", Payload: outcomePayload{Position: payload.Position, Outcome: outcome}}
		default:
			send <- outboundMessage[any]{Type: "error", Payload: errorPayload{Code: "bad_request", Message: "unsupported message type"}}
		}
	}

	close(send)
	<-writerDone
}
