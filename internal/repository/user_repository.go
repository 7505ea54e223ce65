package repository

import (
	"strings"
	"sync"

	"github.com/iliyamo/cinema-box-office/internal/model"
	"github.com/iliyamo/cinema-box-office/internal/utils"
)

// UserRepo is the account directory.  Usernames are unique and compared
// case-sensitively, as they are typed at login.
type UserRepo struct {
	mu    sync.RWMutex
	users map[string]*model.User
	cost  int
}

// NewUserRepo returns an empty directory hashing passwords with the given
// bcrypt cost.
func NewUserRepo(cost int) *UserRepo {
	return &UserRepo{users: make(map[string]*model.User), cost: cost}
}

// Create hashes password and stores a user with the given role.  Role,
// username and uniqueness are checked before the password is hashed.
func (r *UserRepo) Create(role, username, password string) (*model.User, error) {
	u, err := model.NewUser(role, username, "")
	if err != nil {
		return nil, err
	}
	r.mu.RLock()
	_, taken := r.users[u.Username]
	r.mu.RUnlock()
	if taken {
		return nil, exists("user", u.Username)
	}

	hash, err := utils.HashPassword(password, r.cost)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	r.mu.Lock()
	defer r.mu.Unlock()
	// a concurrent Create may have won while the hash was computed
	if _, ok := r.users[u.Username]; ok {
		return nil, exists("user", u.Username)
	}
	r.users[u.Username] = u
	return u, nil
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.TrimSpace(username)]
	if !ok {
		return nil, notFound("user", username)
	}
	return u, nil
}
