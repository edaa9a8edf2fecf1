package chat_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmog/academy/core/chat"
	testutil "github.com/jmog/academy/tests"
)

func TestService_Send_cannedFallback(t *testing.T) {
	svc := chat.NewService(testutil.NewConfig(), testutil.NewLogger())
	sessionID := svc.NewSession()
	require.NotEmpty(t, sessionID)

	// no workflow configured: replies rotate through the canned set
	first := svc.Send(context.Background(), sessionID, "hola")
	second := svc.Send(context.Background(), sessionID, "hola otra vez")

	assert.Equal(t, sessionID, first.SessionID)
	assert.Equal(t, "hola", first.Message)
	assert.NotEmpty(t, first.Reply)
	assert.NotEmpty(t, second.Reply)
	assert.NotEqual(t, first.Reply, second.Reply)
}

func TestService_Send_relay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "sendMessage", payload["action"])
		assert.Equal(t, "sess-1", payload["sessionId"])
		assert.Equal(t, "¿qué es el feudalismo?", payload["message"])

		_ = json.NewEncoder(w).Encode(map[string]string{"output": "El feudalismo es..."})
	}))
	defer srv.Close()

	conf := testutil.NewConfig()
	conf.ChatWebhookURL = srv.URL
	svc := chat.NewService(conf, testutil.NewLogger())

	turn := svc.Send(context.Background(), "sess-1", "¿qué es el feudalismo?")
	assert.Equal(t, "El feudalismo es...", turn.Reply)
}

func TestService_Send_relayFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	conf := testutil.NewConfig()
	conf.ChatWebhookURL = srv.URL
	svc := chat.NewService(conf, testutil.NewLogger())

	// the widget always gets an answer
	turn := svc.Send(context.Background(), "sess-1", "hola")
	assert.NotEmpty(t, turn.Reply)
}

func TestGreeting(t *testing.T) {
	msgs := chat.Greeting("María", "Lara")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "María")
	assert.Contains(t, msgs[1], "Lara")

	msgs = chat.Greeting("", "Lara")
	assert.Contains(t, msgs[0], "estudiante")
}
