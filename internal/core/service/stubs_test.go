package service

import (
	"context"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
)

// In-memory fakes of the ports interfaces shared by the service tests.
// Ids are real ObjectID hex strings so the malformed-id path behaves like
// the mongo repositories.

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == user.Username || u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	if created.ID == "" {
		created.ID = primitive.NewObjectID().Hex()
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == login || u.Email == login {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmailAndToken(_ context.Context, email, token string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email && u.VerificationToken != "" && u.VerificationToken == token {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) MarkVerified(_ context.Context, id string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EmailVerified = true
	u.VerificationToken = ""
	return nil
}

func (r *stubUserRepo) SetVerificationToken(_ context.Context, id, token string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.VerificationToken = token
	return nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	users := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, *cloneUser(u))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string) (bool, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return false, domain.ErrInvalidID
	}
	u, ok := r.users[id]
	if !ok {
		return false, domain.ErrUserNotFound
	}
	if u.Role == role {
		return false, nil
	}
	u.Role = role
	return true, nil
}

func (r *stubUserRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *stubUserRepo) CountByRole(_ context.Context, role string) (int64, error) {
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *stubUserRepo) HasAdmin(ctx context.Context) (bool, error) {
	n, _ := r.CountByRole(ctx, domain.RoleAdmin)
	return n > 0, nil
}

type stubMailer struct {
	verifications []string
	welcomes      []string
	failNext      bool
}

func (m *stubMailer) SendVerification(_ context.Context, recipient, token string) error {
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	m.verifications = append(m.verifications, recipient)
	return nil
}

func (m *stubMailer) SendWelcome(_ context.Context, recipient, username string) error {
	if m.failNext {
		m.failNext = false
		return context.DeadlineExceeded
	}
	m.welcomes = append(m.welcomes, recipient)
	return nil
}

type stubThrottle struct {
	allow bool
}

func (t *stubThrottle) Allow(context.Context, string) (bool, error) {
	return t.allow, nil
}

type stubWallRepo struct {
	snapshots []*domain.WallDesignSnapshot
}

func (r *stubWallRepo) Insert(_ context.Context, snap *domain.WallDesignSnapshot) error {
	clone := *snap
	clone.ID = primitive.NewObjectID().Hex()
	r.snapshots = append(r.snapshots, &clone)
	return nil
}

func (r *stubWallRepo) LatestByUser(_ context.Context, userID string) (*domain.WallDesignSnapshot, error) {
	var latest *domain.WallDesignSnapshot
	for _, s := range r.snapshots {
		if s.UserID != userID {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	clone := *latest
	return &clone, nil
}

type stubSessionRepo struct {
	sessions map[string]*domain.DesignSession
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{sessions: make(map[string]*domain.DesignSession)}
}

func (r *stubSessionRepo) Insert(_ context.Context, s *domain.DesignSession) (*domain.DesignSession, error) {
	clone := *s
	clone.ID = primitive.NewObjectID().Hex()
	r.sessions[clone.ID] = &clone
	copied := clone
	return &copied, nil
}

func (r *stubSessionRepo) ListByUser(_ context.Context, userID string) ([]domain.DesignSession, error) {
	out := []domain.DesignSession{}
	for _, s := range r.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubSessionRepo) FindByIDAndUser(_ context.Context, id, userID string) (*domain.DesignSession, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, domain.ErrInvalidID
	}
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) UpdateByIDAndUser(_ context.Context, id, userID string, in *domain.DesignSession) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return domain.ErrSessionNotFound
	}
	s.Name = in.Name
	s.RoomType = in.RoomType
	s.RoomDimensions = in.RoomDimensions
	s.Walls = in.Walls
	s.SelectedWall = in.SelectedWall
	s.UpdatedAt = in.UpdatedAt
	return nil
}

func (r *stubSessionRepo) DeleteByIDAndUser(_ context.Context, id, userID string) error {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return domain.ErrInvalidID
	}
	s, ok := r.sessions[id]
	if !ok || s.UserID != userID {
		return domain.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *stubSessionRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for id, s := range r.sessions {
		if s.UserID == userID {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}

func (r *stubSessionRepo) Count(context.Context) (int64, error) {
	return int64(len(r.sessions)), nil
}

func (r *stubSessionRepo) Recent(_ context.Context, limit int64) ([]domain.DesignSession, error) {
	out := []domain.DesignSession{}
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
