package user_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmog/academy/core"
	"github.com/jmog/academy/core/user"
	emailsvc "github.com/jmog/academy/services/email"
	inmemdb "github.com/jmog/academy/storage/database/inmem"
	testutil "github.com/jmog/academy/tests"
)

func setup(t *testing.T) (user.Service, user.Repository) {
	t.Helper()

	conf := testutil.NewConfig()
	db, err := inmemdb.Open()
	require.NoError(t, err)
	repo := inmemdb.NewUserRepository(db)
	require.NoError(t, user.SeedDemo(repo))

	emailsvc.SentMessages = nil
	return user.NewService(repo, emailsvc.NewConsoleServiceMock(conf), conf, testutil.NewLogger()), repo
}

func TestService_Authenticate(t *testing.T) {
	svc, _ := setup(t)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "ok", email: "estudiante@demo.com", password: user.DemoPassword},
		{name: "case-insensitive email", email: "Estudiante@Demo.COM", password: user.DemoPassword},
		{name: "wrong password", email: "estudiante@demo.com", password: "nope", wantErr: user.ErrNotFound},
		// unknown email and wrong password are indistinguishable
		{name: "unknown email", email: "who@demo.com", password: user.DemoPassword, wantErr: user.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usr, err := svc.Authenticate(tt.email, tt.password)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "María González", usr.Name)
		})
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := setup(t)

	usr, err := svc.Create(user.User{
		Email: "Lucia@Demo.com",
		Name:  "Lucía Romero",
		Role:  user.RoleStudent,
	}, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "lucia@demo.com", usr.Email)
	assert.NotEmpty(t, usr.ID)
	assert.NoError(t, usr.CheckPassword("s3cret"))

	// the generated ID must not replace a seeded record
	maria, err := svc.GetByEmail("estudiante@demo.com")
	require.NoError(t, err)
	assert.Equal(t, "María González", maria.Name)
	assert.NotEqual(t, maria.ID, usr.ID)

	// duplicate email is rejected with a field error
	_, err = svc.Create(user.User{Email: "lucia@demo.com", Name: "Other", Role: user.RoleStudent}, "pwd")
	var vErr *core.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Fields[0].Field)
}

func TestService_CompleteProfile(t *testing.T) {
	svc, _ := setup(t)

	newbie, err := svc.GetByEmail("nuevo@demo.com")
	require.NoError(t, err)
	require.True(t, newbie.IsNewUser)
	require.False(t, newbie.HasCompletedSetup())

	usr, err := svc.CompleteProfile(newbie.ID, user.StudentProfile{
		PersonalInfo: user.PersonalInfo{
			FullName:  "Carlos Ruiz Díaz",
			Age:       14,
			Course:    "3º ESO",
			Interests: []string{"Geografía"},
		},
		TutorPreferences: user.TutorPreferences{
			CharacterDescription: "Un capitán de barco",
			Personality:          []string{"Divertido"},
			PreferredStyle:       "Práctico",
		},
	})
	require.NoError(t, err)
	assert.False(t, usr.IsNewUser)
	assert.True(t, usr.HasCompletedSetup())

	// the linked parent gets a summary email
	require.Len(t, emailsvc.SentMessages, 1)
	msg := emailsvc.SentMessages[0]
	assert.Equal(t, "padre@demo.com", msg.To[0].Address)
	assert.Contains(t, msg.Subject, "Carlos Ruiz")
}

func TestService_CompleteProfile_unknownUser(t *testing.T) {
	svc, _ := setup(t)

	_, err := svc.CompleteProfile("404", user.StudentProfile{})
	assert.Equal(t, user.ErrNotFound, err)
}
