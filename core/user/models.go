package user

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/go-playground/validator/v10"

	"github.com/jmog/academy/core"
)

// Roles
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

var (
	AllRoles = []string{RoleStudent, RoleTeacher, RoleParent}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Parent", Value: RoleParent},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           string          `json:"id"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	Name         string          `json:"name"`
	IsNewUser    bool            `json:"is_new_user"`
	Profile      *StudentProfile `json:"profile,omitempty"`
	ParentEmail  string          `json:"parent_email,omitempty"`
	PasswordHash []byte          `json:"-"`
}

// Clone returns a deep copy: the profile and its slices are never shared
// with the original.
func (u User) Clone() User {
	out := u
	if u.Profile != nil {
		p := *u.Profile
		p.PersonalInfo.Interests = append([]string(nil), p.PersonalInfo.Interests...)
		p.TutorPreferences.Personality = append([]string(nil), p.TutorPreferences.Personality...)
		out.Profile = &p
	}
	if u.PasswordHash != nil {
		out.PasswordHash = append([]byte(nil), u.PasswordHash...)
	}
	return out
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsStudent() bool { return u.Role == RoleStudent }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsParent() bool  { return u.Role == RoleParent }

// HasCompletedSetup reports whether the one-time profile wizard was finished.
// Only meaningful for students.
func (u *User) HasCompletedSetup() bool {
	return u.Profile != nil && u.Profile.CompletedSetup
}

// StudentProfile is the output of the profile-setup wizard. Present only for
// students who completed setup.
type StudentProfile struct {
	Avatar           string           `json:"avatar,omitempty"`
	PersonalInfo     PersonalInfo     `json:"personal_info"`
	TutorPreferences TutorPreferences `json:"tutor_preferences"`
	CompletedSetup   bool             `json:"completed_setup"`
}

type PersonalInfo struct {
	FullName  string   `json:"full_name" validate:"required"`
	Age       int      `json:"age" validate:"required,min=13,max=18"`
	Course    string   `json:"course"`
	Email     string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string   `json:"phone,omitempty"`
	Interests []string `json:"interests" validate:"required,min=1"`
}

type TutorPreferences struct {
	CharacterDescription string   `json:"character_description" validate:"required"`
	Personality          []string `json:"personality" validate:"required,min=1"`
	PreferredStyle       string   `json:"preferred_style"`
}

func (p *StudentProfile) Validate(validate *validator.Validate) error {
	p.PersonalInfo.FullName = core.CleanString(p.PersonalInfo.FullName)
	p.PersonalInfo.Email = core.CleanString(p.PersonalInfo.Email, true /* lower */)
	p.TutorPreferences.CharacterDescription = core.CleanString(p.TutorPreferences.CharacterDescription)
	return validate.Struct(p)
}
