package inmemdb

import (
	"strconv"
	"sync"

	"github.com/jmog/academy/core/user"
)

type (
	// DB is the in-memory record store used in demo mode and in tests.
	DB struct {
		user *userTable
	}

	userTable struct {
		sync.RWMutex
		table   map[string]*user.User
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		user: &userTable{table: make(map[string]*user.User)},
	}
	return db, nil
}

type userRepository struct {
	db *userTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db.user}
}

func (repo *userRepository) query() []user.User {
	users := make([]user.User, 0, len(repo.db.table))
	for _, u := range repo.db.table {
		users = append(users, u.Clone())
	}
	return users
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if usr.ID == "" {
		// skip past any explicitly inserted keys
		for {
			repo.db.pkCount++
			usr.ID = strconv.Itoa(repo.db.pkCount)
			if _, taken := repo.db.table[usr.ID]; !taken {
				break
			}
		}
	} else if n, err := strconv.Atoi(usr.ID); err == nil && n > repo.db.pkCount {
		// explicit numeric IDs advance the counter so generated ones never collide
		repo.db.pkCount = n
	}
	usr = usr.Clone()
	repo.db.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	return repo.query(), nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if usr, ok := repo.db.table[id]; ok {
		return usr.Clone(), nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUserByEmail(email string) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	for _, usr := range repo.query() {
		if usr.Email == email {
			return usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[usr.ID]; !ok {
		return user.User{}, user.ErrNotFound
	}
	usr = usr.Clone()
	repo.db.table[usr.ID] = &usr
	return usr, nil
}
