package repository

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"admin-console/internal/blobstore"
	"admin-console/internal/httperr"
	"admin-console/internal/logger"
	"admin-console/internal/models"

	"github.com/google/uuid"
)

// Bundled fallback dataset, used when the remote blob is absent or empty.
//
//go:embed default_users.json
var defaultUsersJSON []byte

// persistTimeout bounds the background blob write issued after a mutation.
const persistTimeout = 10 * time.Second

// UserStore owns the mutable user list for the process lifetime. All access
// is serialized through one mutex: initialization happens lazily on first
// use, exactly once, and mutations never interleave. The remote blob store
// is a durability aid only — reads prefer it at initialization, writes are
// fire-and-forget after the in-memory commit.
type UserStore struct {
	mu          sync.Mutex
	users       []*models.User
	initialized bool

	blob blobstore.Store // nil disables remote persistence
	log  *logger.Logger
}

var _ Users = (*UserStore)(nil)

func NewUserStore(blob blobstore.Store, log *logger.Logger) *UserStore {
	return &UserStore{blob: blob, log: log}
}

// ensureInitialized adopts the remote blob if it holds a non-empty user
// array, otherwise loads the bundled defaults. Any remote failure besides
// not-found is logged and treated as "no data available". Caller holds mu.
func (s *UserStore) ensureInitialized(ctx context.Context) error {
	if s.initialized {
		return nil
	}

	if remote := s.loadRemote(ctx); len(remote) > 0 {
		s.users = remote
		s.initialized = true
		return nil
	}

	var defaults []*models.User
	if err := json.Unmarshal(defaultUsersJSON, &defaults); err != nil {
		return errors.New("default user dataset is malformed")
	}
	s.users = defaults
	s.initialized = true
	return nil
}

// loadRemote fetches and decodes the remote user array, returning nil when
// no usable data exists.
func (s *UserStore) loadRemote(ctx context.Context) []*models.User {
	if s.blob == nil {
		return nil
	}

	data, err := s.blob.Load(ctx)
	if err != nil {
		if !errors.Is(err, blobstore.ErrNotFound) && s.log != nil {
			s.log.Warnw("failed to load users from blob store", "err", err)
		}
		return nil
	}

	// Unmarshal yields fresh structs, so remote content never aliases the
	// in-memory list.
	var users []*models.User
	if err := json.Unmarshal(data, &users); err != nil {
		if s.log != nil {
			s.log.Warnw("users blob is not a JSON array, ignoring", "err", err)
		}
		return nil
	}
	return users
}

// persistLocked snapshots the current list and writes it to the blob store
// in the background. The caller's mutation is already committed in memory;
// a failed write is logged and never surfaced. Caller holds mu.
func (s *UserStore) persistLocked() {
	if s.blob == nil {
		return
	}

	data, err := json.MarshalIndent(s.users, "", "  ")
	if err != nil {
		if s.log != nil {
			s.log.Warnw("failed to marshal users for persistence", "err", err)
		}
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.blob.Save(ctx, data); err != nil && s.log != nil {
			s.log.Warnw("failed to persist users to blob store", "err", err)
		}
	}()
}

// FindByUsername returns the record matching username exactly, or (nil, nil)
// when absent. The match is case-sensitive even though uniqueness is not;
// the demo dataset relies on that behavior.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// FindByID returns the record with the given id, or (nil, nil) when absent.
func (s *UserStore) FindByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	for _, u := range s.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// List returns safe projections of every user in insertion order.
func (s *UserStore) List(ctx context.Context) ([]models.SafeUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}

	out := make([]models.SafeUser, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u.Safe())
	}
	return out, nil
}

// Create validates and appends a new user, then persists best-effort.
func (s *UserStore) Create(ctx context.Context, in CreateInput) (models.SafeUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return models.SafeUser{}, err
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		return models.SafeUser{}, httperr.BadRequest("Username is required")
	}
	if len(in.Password) < 6 {
		return models.SafeUser{}, httperr.BadRequest("Password must be at least 6 characters")
	}
	if !models.ValidRole(in.Role) {
		return models.SafeUser{}, httperr.BadRequest("Role must be admin or user")
	}
	if err := s.ensureUniqueUsername(username, ""); err != nil {
		return models.SafeUser{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user := &models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  in.Password,
		Role:      in.Role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.users = append(s.users, user)
	s.persistLocked()

	return user.Safe(), nil
}

// Update applies the provided fields to an existing user with the same
// validation rules as Create, then persists best-effort.
func (s *UserStore) Update(ctx context.Context, id string, patch UpdatePatch) (models.SafeUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return models.SafeUser{}, err
	}

	target := s.findLocked(id)
	if target == nil {
		return models.SafeUser{}, httperr.NotFound("User not found")
	}

	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return models.SafeUser{}, httperr.BadRequest("Username is required")
		}
		if err := s.ensureUniqueUsername(username, target.ID); err != nil {
			return models.SafeUser{}, err
		}
		target.Username = username
	}

	if patch.Password != nil {
		if len(*patch.Password) < 6 {
			return models.SafeUser{}, httperr.BadRequest("Password must be at least 6 characters")
		}
		target.Password = *patch.Password
	}

	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return models.SafeUser{}, httperr.BadRequest("Role must be admin or user")
		}
		target.Role = *patch.Role
	}

	target.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	s.persistLocked()

	return target.Safe(), nil
}

// Delete removes a user and persists best-effort. The last remaining admin
// can never be deleted.
func (s *UserStore) Delete(ctx context.Context, id string) (models.SafeUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureInitialized(ctx); err != nil {
		return models.SafeUser{}, err
	}

	idx := -1
	for i, u := range s.users {
		if u.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.SafeUser{}, httperr.NotFound("User not found")
	}

	target := s.users[idx]
	if target.Role == models.RoleAdmin && s.countAdminsLocked() <= 1 {
		return models.SafeUser{}, httperr.BadRequest("Cannot delete the last admin user")
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)
	s.persistLocked()

	return target.Safe(), nil
}

// findLocked returns the live record with the given id. Caller holds mu.
func (s *UserStore) findLocked(id string) *models.User {
	for _, u := range s.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// ensureUniqueUsername enforces case-insensitive uniqueness, excluding the
// record identified by ignoreID. Caller holds mu.
func (s *UserStore) ensureUniqueUsername(username, ignoreID string) error {
	normalized := strings.ToLower(strings.TrimSpace(username))
	for _, u := range s.users {
		if u.ID != ignoreID && strings.ToLower(u.Username) == normalized {
			return httperr.Conflict("Username already exists")
		}
	}
	return nil
}

// countAdminsLocked counts admin-role records. Caller holds mu.
func (s *UserStore) countAdminsLocked() int {
	n := 0
	for _, u := range s.users {
		if u.Role == models.RoleAdmin {
			n++
		}
	}
	return n
}
