package testutil

import (
	"testing"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
)

// NewConfig returns a test config: defaults only, TEST mode, no outbound
// services configured.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.Env = "TEST"
	conf.TestMode = true
	conf.Debug = true
	conf.WebhookURL = ""
	conf.ChatWebhookURL = ""
	return conf
}

// NewLogger returns a core.Logger that discards everything.
func NewLogger() core.Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func CreateUser(
	t *testing.T,
	repo user.Repository,
	name, email, role, pwd string,
	isNew bool,
) user.User {
	usr := user.User{
		Name:      name,
		Email:     email,
		Role:      role,
		IsNewUser: isNew,
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
