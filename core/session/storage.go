package session

import (
	"errors"

	"github.com/jmog/academy/core/user"
)

// StorageKey is the fixed name under which the session record persists.
const StorageKey = "auth-storage"

// ErrNoState is returned by Storage.Load when nothing has been persisted yet.
var ErrNoState = errors.New("no persisted session state")

type (
	// State is the durable session record: the logged-in user (if any) and
	// the notification endpoint.
	State struct {
		User                 *user.User `json:"user,omitempty"`
		NotificationEndpoint string     `json:"webhook_url"`
	}

	// Storage persists the session record across restarts of the process.
	Storage interface {
		Save(st State) error
		Load() (State, error)
	}
)
