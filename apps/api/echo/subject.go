package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/session"
	"github.com/jmog/academy/core/subject"
	"github.com/jmog/academy/core/user"
)

type subjectApi struct {
	svc   *subject.Service
	store *session.Store
}

func registerSubjectAPI(g *echo.Group, jwt echo.MiddlewareFunc, auth *authenticator, deps ServerDeps) {
	api := subjectApi{
		svc:   deps.SubjectSvc,
		store: deps.Session,
	}

	sg := g.Group("/subjects", jwt)
	sg.GET("", api.query)

	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/content", api.content)
	dg.POST("/select", api.selectSubject, auth.roleMiddleware(user.RoleStudent))
	dg.POST("/activities/start", api.startActivity, auth.roleMiddleware(user.RoleStudent))
}

// Handlers

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	if subjects == nil {
		subjects = []subject.Subject{}
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding subject by ID")
	}
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) content(ctx echo.Context) error {
	content, err := api.svc.Content(ctx.Param("id"))
	if err != nil {
		switch errors.Cause(err) {
		case subject.ErrNotFound:
			return errHttpNotFound
		case subject.ErrComingSoon:
			return echo.NewHTTPError(http.StatusConflict, subject.ErrComingSoon.Error())
		}
		return errors.Wrap(err, "getting subject content")
	}
	return ctx.JSON(http.StatusOK, content)
}

// selectSubject records the student entering a subject from the selection
// screen. Tracking is best-effort: the response does not depend on it.
func (api *subjectApi) selectSubject(ctx echo.Context) error {
	sub, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding subject by ID")
	}

	api.store.TrackActivity(core.SubjectSelected{SubjectID: sub.ID})
	return ctx.JSON(http.StatusOK, sub)
}

func (api *subjectApi) startActivity(ctx echo.Context) error {
	var data StartActivityRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StartActivityRequest")
	}

	started, err := api.svc.StartActivity(ctx.Param("id"), data.ActivityType, data.ActivityID)
	if err != nil {
		switch errors.Cause(err) {
		case subject.ErrNotFound:
			return errHttpNotFound
		case subject.ErrComingSoon:
			return echo.NewHTTPError(http.StatusConflict, subject.ErrComingSoon.Error())
		case subject.ErrLocked:
			return echo.NewHTTPError(http.StatusForbidden, subject.ErrLocked.Error())
		}
		return errors.Wrap(err, "starting activity")
	}

	api.store.TrackActivity(started)
	return ctx.JSON(http.StatusOK, StartActivityResponse{
		SubjectID:    started.SubjectID,
		ActivityType: started.ActivityType,
		ActivityID:   started.ActivityID,
	})
}

type (
	StartActivityRequest struct {
		ActivityType string `json:"activityType"`
		ActivityID   string `json:"activityId"`
	}

	StartActivityResponse struct {
		SubjectID    string `json:"subjectId"`
		ActivityType string `json:"activityType"`
		ActivityID   string `json:"activityId"`
	}
)
