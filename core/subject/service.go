package subject

import (
	"errors"

	"github.com/jmog/academy/core"
)

var (
	// errors
	ErrNotFound   = errors.New("subject not found")
	ErrComingSoon = errors.New("subject not available yet")
	ErrLocked     = errors.New("activity is locked")
)

type (
	Repository interface {
		QueryAllSubjects() ([]Subject, error)
		GetSubjectByID(id string) (Subject, error)
		// GetSubjectContent returns ErrNotFound for unknown subjects; an
		// active subject with no content yields an empty Content.
		GetSubjectContent(id string) (Content, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll() ([]Subject, error) {
	return svc.repo.QueryAllSubjects()
}

func (svc *Service) GetByID(id string) (Subject, error) {
	return svc.repo.GetSubjectByID(id)
}

// Content returns the detail view data for an active subject;
// ErrComingSoon for subjects that exist but are not yet open.
func (svc *Service) Content(id string) (Content, error) {
	sub, err := svc.repo.GetSubjectByID(id)
	if err != nil {
		return Content{}, err
	}
	if !sub.IsActive {
		return Content{}, ErrComingSoon
	}
	return svc.repo.GetSubjectContent(id)
}

// StartActivity checks that the referenced activity exists and is playable,
// and returns the event to be tracked. Locked games return ErrLocked.
func (svc *Service) StartActivity(subjectID, activityType, activityID string) (core.ActivityStarted, error) {
	content, err := svc.Content(subjectID)
	if err != nil {
		return core.ActivityStarted{}, err
	}

	found := false
	switch activityType {
	case ActivityMaterial:
		for _, m := range content.Materials {
			found = found || m.ID == activityID
		}
	case ActivityTest:
		for _, t := range content.Tests {
			found = found || t.ID == activityID
		}
	case ActivitySelfAssessment:
		for _, sa := range content.SelfAssessments {
			found = found || sa.ID == activityID
		}
	case ActivityGame:
		for _, g := range content.Games {
			if g.ID == activityID {
				if !g.Unlocked {
					return core.ActivityStarted{}, ErrLocked
				}
				found = true
			}
		}
	case ActivityVideo:
		for _, v := range content.Videos {
			found = found || v.ID == activityID
		}
	default:
		return core.ActivityStarted{}, ErrNotFound
	}

	if !found {
		return core.ActivityStarted{}, ErrNotFound
	}
	return core.ActivityStarted{
		SubjectID:    subjectID,
		ActivityType: activityType,
		ActivityID:   activityID,
	}, nil
}
