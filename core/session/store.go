package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
)

var NowFunc = time.Now // mockable

type (
	Deps struct {
		Conf     *core.Config
		Logger   core.Logger
		Notifier core.Notifier
		Storage  Storage
		Users    user.Service
	}

	// Store is the single source of truth for who is logged in and where
	// activity events go. It holds at most one authenticated user, persists
	// itself through Storage after every mutation, and fires a best-effort
	// notification on every observable transition. State is always mutated
	// and saved before the notification attempt; notification outcomes never
	// reach the caller.
	Store struct {
		conf     *core.Config
		logger   core.Logger
		notifier core.Notifier
		storage  Storage
		users    user.Service

		mu       sync.Mutex
		user     *user.User
		endpoint string
	}
)

// NewStore builds the session store and rehydrates it from Storage. A missing
// persisted record starts the store logged out with the configured default
// endpoint; a corrupt one is logged and treated the same way.
func NewStore(deps Deps) *Store {
	s := &Store{
		conf:     deps.Conf,
		logger:   deps.Logger,
		notifier: deps.Notifier,
		storage:  deps.Storage,
		users:    deps.Users,
		endpoint: deps.Conf.WebhookURL,
	}

	st, err := s.storage.Load()
	switch errors.Cause(err) {
	case nil:
		s.user = st.User
		s.endpoint = st.NotificationEndpoint
	case ErrNoState:
	default:
		s.logger.Error(fmt.Sprintf("loading session state: %v", err), err)
	}
	return s
}

// Login matches credentials against the reference records. On success the
// store holds a copy of the matched user and a user_login event fires; on
// failure nothing changes and false is all the caller learns.
func (s *Store) Login(email, password string) bool {
	usr, err := s.users.Authenticate(email, password)
	if err != nil {
		return false
	}

	// the session owns its own copy, never the repository's record
	held := usr.Clone()
	s.mu.Lock()
	s.user = &held
	s.mu.Unlock()
	s.save()

	s.notify(core.NewEvent(core.EventUserLogin, map[string]interface{}{
		"userId":   usr.ID,
		"userRole": usr.Role,
		"userName": usr.Name,
	}))
	return true
}

// Logout clears the session. Calling it while logged out is a no-op and
// emits nothing.
func (s *Store) Logout() {
	s.mu.Lock()
	usr := s.user
	s.user = nil
	s.mu.Unlock()
	if usr == nil {
		return
	}
	s.save()

	s.notify(core.NewEvent(core.EventUserLogout, map[string]interface{}{
		"userId":   usr.ID,
		"userRole": usr.Role,
	}))
}

// UpdateProfile replaces the logged-in user's profile and clears the
// new-user flag; the flag never goes back to true. With no user present this
// is a silent no-op; callers must order their calls themselves.
func (s *Store) UpdateProfile(profile user.StudentProfile) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		s.logger.Debug("profile update ignored: no active session")
		return
	}
	id := s.user.ID

	updated, err := s.users.CompleteProfile(id, profile)
	if err != nil {
		// the session copy is still authoritative for this process
		profile.CompletedSetup = true
		s.user.Profile = &profile
		s.user.IsNewUser = false
		s.logger.Error(fmt.Sprintf("syncing profile to user records: %v", err), err)
	} else {
		held := updated.Clone()
		s.user = &held
	}
	prof := *s.user.Profile
	s.mu.Unlock()
	s.save()

	s.notify(core.NewEvent(core.EventProfileUpdated, map[string]interface{}{
		"userId":  id,
		"profile": prof,
	}))
}

// SetNotificationEndpoint points activity events at url. No validation is
// done; the empty string disables sends.
func (s *Store) SetNotificationEndpoint(url string) {
	s.mu.Lock()
	s.endpoint = url
	s.mu.Unlock()
	s.save()
}

// TrackActivity emits a student_activity event wrapping the given activity.
// Silent no-op when logged out, same caveat as UpdateProfile.
func (s *Store) TrackActivity(activity core.Activity) {
	s.mu.Lock()
	usr := s.user
	s.mu.Unlock()
	if usr == nil {
		s.logger.Debug("activity ignored: no active session")
		return
	}

	s.notify(core.NewEvent(core.EventStudentActivity, map[string]interface{}{
		"userId":   usr.ID,
		"activity": core.ActivityPayload(activity, NowFunc()),
	}))
}

// TestNotification fires a webhook_test event so users can verify their
// endpoint from the settings screen. Same best-effort contract as every
// other event.
func (s *Store) TestNotification() {
	s.notify(core.NewEvent(core.EventWebhookTest, map[string]interface{}{
		"message": "Prueba de conexión del webhook",
	}))
}

// User returns a copy of the logged-in user, if any.
func (s *Store) User() (user.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return user.User{}, false
	}
	return s.user.Clone(), true
}

func (s *Store) NotificationEndpoint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endpoint
}

func (s *Store) save() {
	s.mu.Lock()
	st := State{User: s.user, NotificationEndpoint: s.endpoint}
	s.mu.Unlock()

	if err := s.storage.Save(st); err != nil {
		s.logger.Error(fmt.Sprintf("persisting session state: %v", err), err)
	}
}

func (s *Store) notify(evt core.Event) {
	s.notifier.Notify(evt, s.NotificationEndpoint())
}
