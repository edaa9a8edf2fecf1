package notifysvc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jmog/academy/core"
)

type webhookNotifier struct {
	client *http.Client
	logger core.Logger
}

var _ core.Notifier = (*webhookNotifier)(nil)

// NewWebhookNotifier returns the production Notifier: a fire-and-forget HTTP
// POST of the event payload. The remote response is never inspected and
// transport failures are only logged; a dead endpoint costs the application
// nothing but the log line.
func NewWebhookNotifier(conf *core.Config, logger core.Logger) core.Notifier {
	return &webhookNotifier{
		client: &http.Client{Timeout: conf.WebhookTimeout},
		logger: logger,
	}
}

func (svc *webhookNotifier) Notify(evt core.Event, endpoint string) {
	if endpoint == "" {
		svc.logger.Debug(fmt.Sprintf("no notification endpoint configured, logging event: %s %v", evt.Name, evt.Fields))
		return
	}
	go svc.send(evt, endpoint)
}

func (svc *webhookNotifier) send(evt core.Event, endpoint string) {
	body, err := json.Marshal(evt.Payload(time.Now()))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("encoding event %s: %v", evt.Name, err), err)
		return
	}

	res, err := svc.client.Post(endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		svc.logger.Error(fmt.Sprintf("sending event %s: %v", evt.Name, err), err)
		return
	}
	// send and forget: status code and body are intentionally not checked
	_, _ = io.Copy(io.Discard, res.Body)
	_ = res.Body.Close()
}
