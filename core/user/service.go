package user

import (
	"errors"
	"fmt"
	"net/mail"

	"github.com/jmog/academy/core"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("a user with this email already exists")
)

type (
	Repository interface {
		CreateUser(usr User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByEmail(email string) (User, error)
		UpdateUser(usr User) (User, error)
	}

	Service interface {
		// Authenticate matches credentials against the stored records.
		// Any failure comes back as ErrNotFound: callers cannot distinguish
		// an unknown email from a wrong password.
		Authenticate(email, pwd string) (User, error)
		Create(usr User, pwd string) (User, error)
		QueryAll() ([]User, error)
		GetByID(id string) (User, error)
		GetByEmail(email string) (User, error)
		// CompleteProfile stores the wizard output on the user record,
		// clears the new-user flag and mails a summary to the linked parent.
		CompleteProfile(id string, profile StudentProfile) (User, error)
	}

	service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) Service {
	return &service{
		repo:    repo,
		mailSvc: mailSvc,
		conf:    conf,
		logger:  logger,
	}
}

func (svc *service) Authenticate(email, pwd string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
	if err != nil {
		return User{}, ErrNotFound
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return User{}, ErrNotFound
	}
	return usr, nil
}

func (svc *service) Create(usr User, pwd string) (User, error) {
	usr.Email = core.CleanString(usr.Email, true /* lower */)
	if existing, err := svc.repo.GetUserByEmail(usr.Email); err == nil && existing.ID != usr.ID {
		return User{}, core.NewValidationError(ErrEmailExists, core.FieldError{Field: "email", Error: ErrEmailExists.Error()})
	}
	if err := usr.SetPassword(pwd); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

func (svc *service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(core.CleanString(email, true /* lower */))
}

func (svc *service) CompleteProfile(id string, profile StudentProfile) (User, error) {
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}

	profile.CompletedSetup = true
	usr.Profile = &profile
	usr.IsNewUser = false

	usr, err = svc.repo.UpdateUser(usr)
	if err != nil {
		return User{}, err
	}

	svc.sendParentReport(usr)
	return usr, nil
}

func (svc *service) sendParentReport(usr User) {
	if usr.ParentEmail == "" {
		return
	}
	msg := &core.EmailMessage{
		To:      []mail.Address{{Address: usr.ParentEmail}},
		Subject: fmt.Sprintf("%s completed their tutor setup", usr.Name),
		TextContent: fmt.Sprintf(
			"%s just finished setting up their virtual tutor on %s.\n\n"+
				"Tutor: %s\nLearning style: %s\n\n"+
				"You can follow their activity from your parent dashboard: %s",
			usr.Name, svc.conf.AppName,
			usr.Profile.TutorPreferences.CharacterDescription,
			usr.Profile.TutorPreferences.PreferredStyle,
			svc.conf.FrontendBaseURL,
		),
	}
	svc.mailSvc.SendMessages(msg)
}
