package core

import "time"

// Event names emitted by the session store.
const (
	EventUserLogin       = "user_login"
	EventUserLogout      = "user_logout"
	EventProfileUpdated  = "profile_updated"
	EventStudentActivity = "student_activity"
	EventWebhookTest     = "webhook_test"
)

type (
	// Event is a single activity notification bound for the automation
	// endpoint. It is serialized as one flat JSON object: Fields merged with
	// the event name, an RFC 3339 timestamp and the application source tag.
	Event struct {
		Name   string
		Fields map[string]interface{}
	}

	// Notifier is any service that can deliver events to an automation
	// endpoint. Delivery is strictly best-effort: Notify never blocks the
	// caller and never reports failure; an empty endpoint disables the
	// network send entirely.
	Notifier interface {
		Notify(evt Event, endpoint string)
	}
)

func NewEvent(name string, fields map[string]interface{}) Event {
	return Event{Name: name, Fields: fields}
}

// Payload returns the flat object to be serialized and POSTed.
func (e Event) Payload(now time.Time) map[string]interface{} {
	p := make(map[string]interface{}, len(e.Fields)+3)
	for k, v := range e.Fields {
		p[k] = v
	}
	p["event"] = e.Name
	p["timestamp"] = now.UTC().Format(time.RFC3339)
	p["source"] = Source
	return p
}

// Student activity kinds. Each known user action gets its own type; anything
// open-ended goes through GenericActivity.

const (
	ActionSubjectSelected = "subject_selected"
	ActionActivityStarted = "activity_started"
	ActionTutorChatOpened = "tutor_chat_opened"
	ActionChatMessage     = "chat_message"
)

type Activity interface {
	Action() string
	// Context returns the action-specific fields, without the action name.
	Context() map[string]interface{}
}

type (
	// SubjectSelected records a student entering a subject from the
	// selection screen.
	SubjectSelected struct {
		SubjectID string
	}

	// ActivityStarted records a student opening a material, test, game or
	// video inside a subject.
	ActivityStarted struct {
		SubjectID    string
		ActivityType string // material | test | self_assessment | game | video
		ActivityID   string
	}

	// TutorChatOpened records the tutor chat widget being opened.
	TutorChatOpened struct {
		TutorType string
	}

	// ChatMessage records a single message sent to the tutor chat.
	ChatMessage struct {
		SessionID string
		Message   string
	}

	// GenericActivity is a free-form key-value bag for extension fields the
	// known kinds do not cover. An "action" key is expected.
	GenericActivity map[string]interface{}
)

func (a SubjectSelected) Action() string { return ActionSubjectSelected }
func (a SubjectSelected) Context() map[string]interface{} {
	return map[string]interface{}{"subjectId": a.SubjectID}
}

func (a ActivityStarted) Action() string { return ActionActivityStarted }
func (a ActivityStarted) Context() map[string]interface{} {
	return map[string]interface{}{
		"subjectId":    a.SubjectID,
		"activityType": a.ActivityType,
		"activityId":   a.ActivityID,
	}
}

func (a TutorChatOpened) Action() string { return ActionTutorChatOpened }
func (a TutorChatOpened) Context() map[string]interface{} {
	return map[string]interface{}{"tutorType": a.TutorType}
}

func (a ChatMessage) Action() string { return ActionChatMessage }
func (a ChatMessage) Context() map[string]interface{} {
	return map[string]interface{}{"sessionId": a.SessionID, "message": a.Message}
}

func (a GenericActivity) Action() string {
	if s, ok := a["action"].(string); ok {
		return s
	}
	return "unknown"
}

func (a GenericActivity) Context() map[string]interface{} {
	ctx := make(map[string]interface{}, len(a))
	for k, v := range a {
		if k == "action" {
			continue
		}
		ctx[k] = v
	}
	return ctx
}

// ActivityPayload flattens an Activity into the wire object carried in the
// "activity" field: action + context + timestamp.
func ActivityPayload(a Activity, now time.Time) map[string]interface{} {
	ctx := a.Context()
	p := make(map[string]interface{}, len(ctx)+2)
	for k, v := range ctx {
		p[k] = v
	}
	p["action"] = a.Action()
	p["timestamp"] = now.UTC().Format(time.RFC3339)
	return p
}
