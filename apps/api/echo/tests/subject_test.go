package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	echoapi "github.com/jmog/academy/apps/api/echo"
	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/subject"
	"github.com/jmog/academy/core/user"
)

func Test_subjectApi_query(t *testing.T) {
	f := setup(t)

	req, rec := newRequest(http.MethodGet, "/api/subjects")
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	token := login(t, f, "estudiante@demo.com", user.DemoPassword)

	req, rec = newAuthRequest(http.MethodGet, "/api/subjects", token)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var subjects []subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &subjects))
	assert.Len(t, subjects, 6)
}

func Test_subjectApi_retrieve(t *testing.T) {
	f := setup(t)
	token := login(t, f, "estudiante@demo.com", user.DemoPassword)

	req, rec := newAuthRequest(http.MethodGet, "/api/subjects/geography-history", token)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var sub subject.Subject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sub))
	assert.Equal(t, "Geografía e Historia", sub.Name)

	req, rec = newAuthRequest(http.MethodGet, "/api/subjects/astrology", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "not found"})}, rec)
}

func Test_subjectApi_content(t *testing.T) {
	f := setup(t)
	token := login(t, f, "estudiante@demo.com", user.DemoPassword)

	req, rec := newAuthRequest(http.MethodGet, "/api/subjects/geography-history/content", token)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var content subject.Content
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &content))
	assert.Len(t, content.Games, 3)

	// coming soon
	req, rec = newAuthRequest(http.MethodGet, "/api/subjects/mathematics/content", token)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code)
}

func Test_subjectApi_selectSubject(t *testing.T) {
	f := setup(t)
	token := login(t, f, "estudiante@demo.com", user.DemoPassword)
	f.notifier.Reset()

	req, rec := newAuthRequest(http.MethodPost, "/api/subjects/geography-history/select", token)
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	sent := f.notifier.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, core.EventStudentActivity, sent[0].Event.Name)
	activity := sent[0].Event.Fields["activity"].(map[string]interface{})
	assert.Equal(t, core.ActionSubjectSelected, activity["action"])
	assert.Equal(t, "geography-history", activity["subjectId"])
}

func Test_subjectApi_startActivity(t *testing.T) {
	f := setup(t)
	token := login(t, f, "estudiante@demo.com", user.DemoPassword)

	tests := []struct {
		name     string
		body     echoapi.StartActivityRequest
		wantCode int
	}{
		{name: "material", body: echoapi.StartActivityRequest{ActivityType: subject.ActivityMaterial, ActivityID: "1"}, wantCode: http.StatusOK},
		{name: "unlocked game", body: echoapi.StartActivityRequest{ActivityType: subject.ActivityGame, ActivityID: "1"}, wantCode: http.StatusOK},
		{name: "locked game", body: echoapi.StartActivityRequest{ActivityType: subject.ActivityGame, ActivityID: "3"}, wantCode: http.StatusForbidden},
		{name: "unknown activity", body: echoapi.StartActivityRequest{ActivityType: subject.ActivityTest, ActivityID: "404"}, wantCode: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.notifier.Reset()

			req, rec := newAuthRequest(http.MethodPost, "/api/subjects/geography-history/activities/start", token, marchallObj(t, tt.body))
			f.app.ServeHTTP(rec, req)
			require.Equal(t, tt.wantCode, rec.Code, rec.Body.String())

			sent := f.notifier.Sent()
			if tt.wantCode != http.StatusOK {
				// nothing is tracked for refused activities
				assert.Empty(t, sent)
				return
			}
			require.Len(t, sent, 1)
			activity := sent[0].Event.Fields["activity"].(map[string]interface{})
			assert.Equal(t, core.ActionActivityStarted, activity["action"])
			assert.Equal(t, tt.body.ActivityType, activity["activityType"])
			assert.Equal(t, tt.body.ActivityID, activity["activityId"])
		})
	}
}

func Test_subjectApi_teacherCannotStartActivities(t *testing.T) {
	f := setup(t)
	token := login(t, f, "profesor@demo.com", user.DemoPassword)

	req, rec := newAuthRequest(http.MethodPost, "/api/subjects/geography-history/select", token)
	f.app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, httpErr{Error: "permission denied"})}, rec)
}
