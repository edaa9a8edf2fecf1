package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/require"

	echoapi "github.com/jmog/academy/apps/api/echo"
	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/chat"
	"github.com/jmog/academy/core/session"
	"github.com/jmog/academy/core/subject"
	"github.com/jmog/academy/core/user"
	emailsvc "github.com/jmog/academy/services/email"
	notifysvc "github.com/jmog/academy/services/notifier"
	"github.com/jmog/academy/storage/catalog"
	inmemdb "github.com/jmog/academy/storage/database/inmem"
	"github.com/jmog/academy/storage/sessionstore"
	testutil "github.com/jmog/academy/tests"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
)

const testEndpoint = "https://hooks.test/webhook/abc"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type fixture struct {
	app      *echoapi.Server
	conf     *core.Config
	store    *session.Store
	notifier *notifysvc.NotifierMock
	storage  *sessionstore.DummyStorage
	usrSvc   user.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()

	conf := testutil.NewConfig()
	conf.Debug = false // exercise the production error shape
	conf.WebhookURL = testEndpoint
	logger := testutil.NewLogger()

	db, err := inmemdb.Open()
	require.NoError(t, err)
	usrRepo := inmemdb.NewUserRepository(db)
	require.NoError(t, user.SeedDemo(usrRepo))
	usrSvc := user.NewService(usrRepo, emailsvc.NewConsoleServiceMock(conf), conf, logger)

	notifier := notifysvc.NewNotifierMock()
	storage := sessionstore.NewDummyStorage()
	store := session.NewStore(session.Deps{
		Conf:     conf,
		Logger:   logger,
		Notifier: notifier,
		Storage:  storage,
		Users:    usrSvc,
	})

	catalogRepo, err := catalog.NewRepository()
	require.NoError(t, err)

	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)

	return &fixture{
		app: echoapi.NewServer(echoapi.ServerDeps{
			Conf:           conf,
			Logger:         logger,
			Session:        store,
			UserSvc:        usrSvc,
			SubjectSvc:     subject.NewService(catalogRepo),
			ChatSvc:        chat.NewService(conf, logger),
			Validate:       validate,
			Translator:     translator,
			DisableReqLogs: true,
		}),
		conf:     conf,
		store:    store,
		notifier: notifier,
		storage:  storage,
		usrSvc:   usrSvc,
	}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// login goes through the API so the session store and the token stay in sync.
func login(t *testing.T, f *fixture, email, pwd string) string {
	t.Helper()

	req, rec := newRequest(http.MethodPost, "/api/session/login", marchallObj(t, echoapi.LoginRequest{
		Email:    email,
		Password: pwd,
	}))
	f.app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res echoapi.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
