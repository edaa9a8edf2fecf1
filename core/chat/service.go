package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
)

// cannedReplies is served in rotation when no chat workflow is configured.
var cannedReplies = []string{
	"¡Buena pregunta! Vamos a verlo paso a paso.",
	"Interesante. ¿Qué sabes ya sobre ese tema?",
	"Revisemos juntos los materiales de la asignatura.",
	"¡Sigue así! La práctica hace al maestro.",
}

type (
	Turn struct {
		SessionID string `json:"session_id"`
		Message   string `json:"message"`
		Reply     string `json:"reply"`
	}

	Service struct {
		conf   *core.Config
		logger core.Logger
		client *http.Client

		mu     sync.Mutex
		canned int
	}
)

func NewService(conf *core.Config, logger core.Logger) *Service {
	return &Service{
		conf:   conf,
		logger: logger,
		client: &http.Client{Timeout: conf.WebhookTimeout},
	}
}

// NewSession mints a chat session id for one widget lifetime.
func (svc *Service) NewSession() string {
	return uuid.NewString()
}

// Send relays a message to the chat workflow and returns the tutor's reply.
// Without a configured workflow it falls back to canned replies; a workflow
// that fails or answers garbage degrades to the same fallback so the widget
// always gets a reply.
func (svc *Service) Send(ctx context.Context, sessionID, message string) Turn {
	turn := Turn{SessionID: sessionID, Message: message}

	if svc.conf.ChatWebhookURL == "" {
		turn.Reply = svc.nextCanned()
		return turn
	}

	reply, err := svc.relay(ctx, sessionID, message)
	if err != nil {
		svc.logger.Error(fmt.Sprintf("relaying chat message: %v", err), err)
		turn.Reply = svc.nextCanned()
		return turn
	}
	turn.Reply = reply
	return turn
}

func (svc *Service) relay(ctx context.Context, sessionID, message string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"action":    "sendMessage",
		"sessionId": sessionID,
		"message":   message,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding chat message")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, svc.conf.ChatWebhookURL, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building chat request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling chat workflow")
	}
	defer func() { _ = res.Body.Close() }()
	if res.StatusCode >= http.StatusBadRequest {
		return "", errors.Errorf("chat workflow status: %d", res.StatusCode)
	}

	var payload struct {
		Output string `json:"output"`
		Text   string `json:"text"`
	}
	if err = json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", errors.Wrap(err, "decoding chat reply")
	}
	if payload.Output != "" {
		return payload.Output, nil
	}
	if payload.Text != "" {
		return payload.Text, nil
	}
	return "", errors.New("empty chat reply")
}

func (svc *Service) nextCanned() string {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	reply := cannedReplies[svc.canned%len(cannedReplies)]
	svc.canned++
	return reply
}

// Greeting composes the widget's opening messages for a user.
func Greeting(firstName, tutorName string) []string {
	if firstName == "" {
		firstName = "estudiante"
	}
	return []string{
		fmt.Sprintf("¡Hola %s! 👋", firstName),
		fmt.Sprintf("Soy %s, tu tutor virtual personalizado. ¿En qué puedo ayudarte hoy?", tutorName),
	}
}
