package echoapi

import (
	"github.com/go-playground/validator/v10"

	"github.com/jmog/academy/core"
)

type (
	// ActivityRequest is a tagged union: Action picks the activity kind and
	// the matching fields are read off the flat body. Unknown actions fall
	// through to a GenericActivity carrying Extra.
	ActivityRequest struct {
		Action string `json:"action" validate:"required"`

		SubjectID    string `json:"subjectId,omitempty"`
		ActivityType string `json:"activityType,omitempty"`
		ActivityID   string `json:"activityId,omitempty"`
		TutorType    string `json:"tutorType,omitempty"`
		SessionID    string `json:"sessionId,omitempty"`
		Message      string `json:"message,omitempty"`

		Extra map[string]interface{} `json:"extra,omitempty"`
	}
)

func (ar *ActivityRequest) Validate(validate *validator.Validate) error {
	ar.Action = core.CleanString(ar.Action, true /* lower */)
	return validate.Struct(ar)
}

// Activity maps the request onto the concrete activity kind.
func (ar *ActivityRequest) Activity() core.Activity {
	switch ar.Action {
	case core.ActionSubjectSelected:
		return core.SubjectSelected{SubjectID: ar.SubjectID}
	case core.ActionActivityStarted:
		return core.ActivityStarted{
			SubjectID:    ar.SubjectID,
			ActivityType: ar.ActivityType,
			ActivityID:   ar.ActivityID,
		}
	case core.ActionTutorChatOpened:
		return core.TutorChatOpened{TutorType: ar.TutorType}
	case core.ActionChatMessage:
		return core.ChatMessage{SessionID: ar.SessionID, Message: ar.Message}
	default:
		generic := core.GenericActivity{"action": ar.Action}
		for k, v := range ar.Extra {
			generic[k] = v
		}
		return generic
	}
}
