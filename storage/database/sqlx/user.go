package sqlxrepos

import (
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jmog/academy/core/user"
)

type userRow struct {
	ID           string          `db:"id"`
	Email        string          `db:"email"`
	Role         string          `db:"role"`
	Name         string          `db:"name"`
	IsNewUser    bool            `db:"is_new_user"`
	ParentEmail  sql.NullString  `db:"parent_email"`
	PasswordHash []byte          `db:"password_hash"`
	Profile      json.RawMessage `db:"profile"`
}

func (r userRow) toUser() (user.User, error) {
	usr := user.User{
		ID:           r.ID,
		Email:        r.Email,
		Role:         r.Role,
		Name:         r.Name,
		IsNewUser:    r.IsNewUser,
		ParentEmail:  r.ParentEmail.String,
		PasswordHash: r.PasswordHash,
	}
	if len(r.Profile) > 0 {
		var prof user.StudentProfile
		if err := json.Unmarshal(r.Profile, &prof); err != nil {
			return user.User{}, errors.Wrap(err, "decoding profile")
		}
		usr.Profile = &prof
	}
	return usr, nil
}

func fromUser(usr user.User) (userRow, error) {
	row := userRow{
		ID:           usr.ID,
		Email:        usr.Email,
		Role:         usr.Role,
		Name:         usr.Name,
		IsNewUser:    usr.IsNewUser,
		ParentEmail:  sql.NullString{String: usr.ParentEmail, Valid: usr.ParentEmail != ""},
		PasswordHash: usr.PasswordHash,
	}
	if usr.Profile != nil {
		data, err := json.Marshal(usr.Profile)
		if err != nil {
			return userRow{}, errors.Wrap(err, "encoding profile")
		}
		row.Profile = data
	}
	return row, nil
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sql.DB) user.Repository {
	return &userRepository{db: sqlx.NewDb(db, "postgres")}
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	row, err := fromUser(usr)
	if err != nil {
		return user.User{}, err
	}
	_, err = repo.db.NamedExec(
		`INSERT INTO users (id, email, role, name, is_new_user, parent_email, password_hash, profile)
		 VALUES (:id, :email, :role, :name, :is_new_user, :parent_email, :password_hash, :profile)`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	var rows []userRow
	if err := repo.db.Select(&rows, `SELECT * FROM users ORDER BY id`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}

	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		usr, err := r.toUser()
		if err != nil {
			return nil, err
		}
		users = append(users, usr)
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	return repo.get(`SELECT * FROM users WHERE id = $1`, id)
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	return repo.get(`SELECT * FROM users WHERE email = $1`, email)
}

func (repo *userRepository) get(query, arg string) (user.User, error) {
	var row userRow
	if err := repo.db.Get(&row, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "querying user")
	}
	return row.toUser()
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	row, err := fromUser(usr)
	if err != nil {
		return user.User{}, err
	}
	res, err := repo.db.NamedExec(
		`UPDATE users
		 SET email = :email, role = :role, name = :name, is_new_user = :is_new_user,
		     parent_email = :parent_email, password_hash = :password_hash, profile = :profile
		 WHERE id = :id`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}
