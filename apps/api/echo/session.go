package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/session"
	"github.com/jmog/academy/core/user"
)

type sessionApi struct {
	auth       *authenticator
	store      *session.Store
	usrSvc     user.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerSessionAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := sessionApi{
		auth:       auth,
		store:      deps.Session,
		usrSvc:     deps.UserSvc,
		validate:   deps.Validate,
		translator: deps.Translator,
	}

	sg := g.Group("/session")

	// un-authed endpoints
	sg.POST("/login", api.login)

	// authed endpoints
	ag := sg.Group("", jwt)
	ag.GET("", api.retrieve)
	ag.POST("/logout", api.logout)
	ag.POST("/token-refresh", api.refreshToken)
	ag.PUT("/profile", api.updateProfile, auth.roleMiddleware(user.RoleStudent))
	ag.POST("/activity", api.trackActivity)
	ag.GET("/webhook", api.retrieveWebhook)
	ag.PUT("/webhook", api.updateWebhook)
	ag.POST("/webhook/test", api.testWebhook)
}

// Handlers

func (api *sessionApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	// callers only ever learn pass/fail, never which part was wrong
	if ok := api.store.Login(data.Email, data.Password); !ok {
		return errAuthenticationFailed
	}

	usr, _ := api.store.User()
	token, err := api.auth.generateToken(api.auth.getUserClaims(usr))
	if err != nil {
		return errors.Wrap(err, "generating token")
	}

	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: usr})
}

func (api *sessionApi) logout(ctx echo.Context) error {
	api.store.Logout()
	return ctx.NoContent(http.StatusNoContent)
}

func (api *sessionApi) retrieve(ctx echo.Context) error {
	res := SessionResponse{NotificationEndpoint: api.store.NotificationEndpoint()}
	if usr, ok := api.store.User(); ok {
		res.User = &usr
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *sessionApi) refreshToken(ctx echo.Context) error {
	token, err := api.auth.refreshToken(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "refreshing token")
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token})
}

func (api *sessionApi) updateProfile(ctx echo.Context) error {
	var profile user.StudentProfile
	if err := ctx.Bind(&profile); err != nil {
		return errors.Wrap(err, "binding to StudentProfile")
	}
	if err := profile.Validate(api.validate); err != nil {
		return err
	}

	api.store.UpdateProfile(profile)

	usr, ok := api.store.User()
	if !ok {
		return errUnauthorized
	}
	return ctx.JSON(http.StatusOK, usr)
}

func (api *sessionApi) trackActivity(ctx echo.Context) error {
	var data ActivityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ActivityRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	api.store.TrackActivity(data.Activity())
	return ctx.NoContent(http.StatusAccepted)
}

func (api *sessionApi) retrieveWebhook(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, WebhookResponse{URL: api.store.NotificationEndpoint()})
}

func (api *sessionApi) updateWebhook(ctx echo.Context) error {
	var data WebhookRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to WebhookRequest")
	}

	// no URL validation on purpose: the empty string disables notifications
	api.store.SetNotificationEndpoint(data.URL)
	return ctx.JSON(http.StatusOK, WebhookResponse{URL: api.store.NotificationEndpoint()})
}

func (api *sessionApi) testWebhook(ctx echo.Context) error {
	if api.store.NotificationEndpoint() == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "webhook_url", Error: "no endpoint configured"})
	}
	api.store.TestNotification()
	return ctx.JSON(http.StatusOK, SuccessResponse{Success: "test notification sent"})
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user,omitempty"`
	}

	SessionResponse struct {
		User                 *user.User `json:"user"`
		NotificationEndpoint string     `json:"webhook_url"`
	}

	WebhookRequest struct {
		URL string `json:"webhook_url"`
	}

	WebhookResponse struct {
		URL string `json:"webhook_url"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}
