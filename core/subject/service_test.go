package subject_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmog/academy/core/subject"
)

type fakeRepo struct {
	subjects map[string]subject.Subject
	content  map[string]subject.Content
}

func (r *fakeRepo) QueryAllSubjects() ([]subject.Subject, error) {
	out := make([]subject.Subject, 0, len(r.subjects))
	for _, sub := range r.subjects {
		out = append(out, sub)
	}
	return out, nil
}

func (r *fakeRepo) GetSubjectByID(id string) (subject.Subject, error) {
	if sub, ok := r.subjects[id]; ok {
		return sub, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (r *fakeRepo) GetSubjectContent(id string) (subject.Content, error) {
	if _, ok := r.subjects[id]; !ok {
		return subject.Content{}, subject.ErrNotFound
	}
	return r.content[id], nil
}

func setup() *subject.Service {
	return subject.NewService(&fakeRepo{
		subjects: map[string]subject.Subject{
			"history": {ID: "history", Name: "Historia", IsActive: true},
			"math":    {ID: "math", Name: "Matemáticas"},
		},
		content: map[string]subject.Content{
			"history": {
				Materials: []subject.Material{{ID: "m1", Title: "Tema 1"}},
				Tests:     []subject.Test{{ID: "t1", Title: "Test 1"}},
				Games: []subject.Game{
					{ID: "g1", Title: "Quiz", Unlocked: true},
					{ID: "g2", Title: "Locked Game"},
				},
				Videos: []subject.Video{{ID: "v1", Title: "Intro"}},
			},
		},
	})
}

func TestService_Content(t *testing.T) {
	svc := setup()

	content, err := svc.Content("history")
	require.NoError(t, err)
	assert.Len(t, content.Materials, 1)

	_, err = svc.Content("math")
	assert.Equal(t, subject.ErrComingSoon, err)

	_, err = svc.Content("404")
	assert.Equal(t, subject.ErrNotFound, err)
}

func TestService_StartActivity(t *testing.T) {
	svc := setup()

	tests := []struct {
		name         string
		subjectID    string
		activityType string
		activityID   string
		wantErr      error
	}{
		{name: "material", subjectID: "history", activityType: subject.ActivityMaterial, activityID: "m1"},
		{name: "test", subjectID: "history", activityType: subject.ActivityTest, activityID: "t1"},
		{name: "unlocked game", subjectID: "history", activityType: subject.ActivityGame, activityID: "g1"},
		{name: "video", subjectID: "history", activityType: subject.ActivityVideo, activityID: "v1"},
		{name: "locked game", subjectID: "history", activityType: subject.ActivityGame, activityID: "g2", wantErr: subject.ErrLocked},
		{name: "unknown activity", subjectID: "history", activityType: subject.ActivityMaterial, activityID: "404", wantErr: subject.ErrNotFound},
		{name: "unknown type", subjectID: "history", activityType: "lol", activityID: "m1", wantErr: subject.ErrNotFound},
		{name: "inactive subject", subjectID: "math", activityType: subject.ActivityMaterial, activityID: "m1", wantErr: subject.ErrComingSoon},
		{name: "unknown subject", subjectID: "404", activityType: subject.ActivityMaterial, activityID: "m1", wantErr: subject.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			started, err := svc.StartActivity(tt.subjectID, tt.activityType, tt.activityID)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.subjectID, started.SubjectID)
			assert.Equal(t, tt.activityType, started.ActivityType)
			assert.Equal(t, tt.activityID, started.ActivityID)
		})
	}
}
