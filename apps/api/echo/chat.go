package echoapi

import (
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/chat"
	"github.com/jmog/academy/core/session"
	"github.com/jmog/academy/core/user"
)

type chatApi struct {
	svc      *chat.Service
	store    *session.Store
	logger   core.Logger
	upgrader websocket.Upgrader
}

func registerChatAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := chatApi{
		svc:    deps.ChatSvc,
		store:  deps.Session,
		logger: deps.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}

	cg := g.Group("/chat", jwt, auth.roleMiddleware(user.RoleStudent))
	cg.POST("/sessions", api.openSession)
	cg.POST("/sessions/:id/messages", api.sendMessage)
	cg.GET("/sessions/:id/ws", api.relay)
}

// Handlers

func (api *chatApi) openSession(ctx echo.Context) error {
	usr, ok := api.store.User()
	if !ok {
		return errUnauthorized
	}

	sessionID := api.svc.NewSession()
	api.store.TrackActivity(core.TutorChatOpened{TutorType: tutorName(usr)})

	return ctx.JSON(http.StatusCreated, OpenChatResponse{
		SessionID: sessionID,
		Messages:  chat.Greeting(firstName(usr), tutorName(usr)),
	})
}

func (api *chatApi) sendMessage(ctx echo.Context) error {
	var data ChatMessageRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChatMessageRequest")
	}
	if data.Message == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "message", Error: "message is required"})
	}

	sessionID := ctx.Param("id")
	turn := api.svc.Send(ctx.Request().Context(), sessionID, data.Message)
	api.store.TrackActivity(core.ChatMessage{SessionID: sessionID, Message: data.Message})

	return ctx.JSON(http.StatusOK, turn)
}

// relay keeps a websocket open for the chat widget: each inbound text frame
// is one message, each outbound frame is the tutor's reply.
func (api *chatApi) relay(ctx echo.Context) error {
	conn, err := api.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		return errors.Wrap(err, "upgrading to websocket")
	}
	defer func() { _ = conn.Close() }()

	sessionID := ctx.Param("id")
	for {
		var data ChatMessageRequest
		if err = conn.ReadJSON(&data); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				api.logger.Debug("chat websocket closed: " + err.Error())
			}
			return nil
		}
		if data.Message == "" {
			continue
		}

		turn := api.svc.Send(ctx.Request().Context(), sessionID, data.Message)
		api.store.TrackActivity(core.ChatMessage{SessionID: sessionID, Message: data.Message})

		if err = conn.WriteJSON(turn); err != nil {
			api.logger.Debug("writing chat reply: " + err.Error())
			return nil
		}
	}
}

type (
	ChatMessageRequest struct {
		Message string `json:"message"`
	}

	OpenChatResponse struct {
		SessionID string   `json:"session_id"`
		Messages  []string `json:"messages"`
	}
)

func firstName(usr user.User) string {
	if parts := strings.Fields(usr.Name); len(parts) > 0 {
		return parts[0]
	}
	return usr.Name
}

func tutorName(usr user.User) string {
	if usr.Profile != nil && usr.Profile.TutorPreferences.CharacterDescription != "" {
		return usr.Profile.TutorPreferences.CharacterDescription
	}
	return "tu tutor virtual"
}
