package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/bookgetter/bookstore/internal/models"
	"github.com/bookgetter/bookstore/internal/store"
)

type UserRepository struct {
	mu  sync.Mutex
	col *store.Collection[models.User]
}

func NewUserRepository(backend store.Backend) *UserRepository {
	return &UserRepository{col: store.NewCollection[models.User](backend, "users")}
}

// Register creates a new user after verifying that neither the username nor
// the email is already taken. The two scans are independent and username is
// checked first.
func (r *UserRepository) Register(ctx context.Context, username, password, email, role string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return nil, fmt.Errorf("%w: username already exists", ErrConflict)
		}
	}
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("%w: email already exists", ErrConflict)
		}
	}
	user := models.NewUser(username, password, email, role)
	users = append(users, user)
	if err := r.col.Save(ctx, users); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login returns the user whose username and password both match exactly.
// A mismatch is not an error; it returns nil.
func (r *UserRepository) Login(ctx context.Context, username, password string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *UserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.col.Load(ctx)
}

// Update replaces the stored record wholesale; the caller must supply the
// fully merged entity.
func (r *UserRepository) Update(ctx context.Context, user models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			if err := r.col.Save(ctx, users); err != nil {
				return nil, err
			}
			return &user, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, user.ID)
}

// UserPatch carries a partial profile update. Nil fields keep the stored
// value.
type UserPatch struct {
	Email    *string
	Address  *string
	Phone    *string
	Password *string
}

// Patch merges the patch into the stored user field by field, inside the
// repository lock, so untouched fields cannot be lost to a concurrent writer.
func (r *UserRepository) Patch(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users, err := r.col.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID != id {
			continue
		}
		if patch.Email != nil {
			users[i].Email = *patch.Email
		}
		if patch.Address != nil {
			users[i].Address = *patch.Address
		}
		if patch.Phone != nil {
			users[i].Phone = *patch.Phone
		}
		if patch.Password != nil && *patch.Password != "" {
			users[i].Password = *patch.Password
		}
		if err := r.col.Save(ctx, users); err != nil {
			return nil, err
		}
		u := users[i]
		return &u, nil
	}
	return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
}
