package notifysvc_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmog/academy/core"
	notifysvc "github.com/jmog/academy/services/notifier"
	testutil "github.com/jmog/academy/tests"
)

func TestWebhookNotifier_Notify(t *testing.T) {
	received := make(chan map[string]interface{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var payload map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &payload))
		received <- payload
	}))
	defer srv.Close()

	notifier := notifysvc.NewWebhookNotifier(testutil.NewConfig(), testutil.NewLogger())
	notifier.Notify(core.NewEvent(core.EventUserLogin, map[string]interface{}{
		"userId":   "1",
		"userRole": "student",
		"userName": "María González",
	}), srv.URL)

	select {
	case payload := <-received:
		assert.Equal(t, core.EventUserLogin, payload["event"])
		assert.Equal(t, "1", payload["userId"])
		assert.Equal(t, "student", payload["userRole"])
		assert.Equal(t, "María González", payload["userName"])
		assert.Equal(t, core.Source, payload["source"])

		ts, ok := payload["timestamp"].(string)
		require.True(t, ok)
		_, err := time.Parse(time.RFC3339, ts)
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("notification never arrived")
	}
}

func TestWebhookNotifier_emptyEndpoint(t *testing.T) {
	calls := make(chan struct{}, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls <- struct{}{}
	}))
	defer srv.Close()

	notifier := notifysvc.NewWebhookNotifier(testutil.NewConfig(), testutil.NewLogger())
	notifier.Notify(core.NewEvent(core.EventWebhookTest, nil), "")

	select {
	case <-calls:
		t.Fatal("no request expected for an empty endpoint")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWebhookNotifier_deadEndpointIsHarmless(t *testing.T) {
	notifier := notifysvc.NewWebhookNotifier(testutil.NewConfig(), testutil.NewLogger())

	// must not panic or block
	done := make(chan struct{})
	go func() {
		notifier.Notify(core.NewEvent(core.EventUserLogout, map[string]interface{}{"userId": "1"}), "http://127.0.0.1:1/nope")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Notify must not block the caller")
	}
}
