package main

import (
	"fmt"
	"time"

	"github.com/jmog/academy/core"
)

// testWebhook fires a webhook_test event at url, or at the configured
// endpoint when url is empty. Delivery is fire-and-forget; failures only
// show up in the logs.
func (cli *commandLine) testWebhook(url string) error {
	if url == "" {
		url = cli.conf.WebhookURL
	}
	if url == "" {
		return fmt.Errorf("no endpoint: pass -url or set %s_WEBHOOKURL", cli.conf.Env)
	}

	cli.notifier.Notify(core.NewEvent(core.EventWebhookTest, map[string]interface{}{
		"message": "Prueba de conexión del webhook",
	}), url)

	// give the background send time to go out before the process exits
	time.Sleep(drainWait(cli.conf.WebhookTimeout))

	fmt.Printf("test event sent to %s\n", url)
	return nil
}

// drainWait bounds how long testwebhook lingers for the background send;
// a slow endpoint should not hold the command for the full webhook timeout.
func drainWait(timeout time.Duration) time.Duration {
	const max = 2 * time.Second
	if timeout < max {
		return timeout
	}
	return max
}
