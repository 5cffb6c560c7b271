package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/altarmaker/altarmaker-api/internal/core/domain"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

func seedUser(t *testing.T, repo *stubUserRepo, username, role string) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.User{
		Username:      username,
		Email:         username + "@example.com",
		PasswordHash:  "hash",
		Role:          role,
		EmailVerified: true,
		IsActive:      true,
		CreatedAt:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestAdminService_CreateAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, newStubSessionRepo(), zerolog.Nop())
	creator := seedUser(t, repo, "root", domain.RoleAdmin)

	created, err := svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Username:  "admin2",
		Password:  "secret123",
		Email:     "Admin2@Example.com",
		CreatedBy: creator.ID,
	})
	if err != nil {
		t.Fatalf("CreateAdmin returned error: %v", err)
	}
	if created.Role != domain.RoleAdmin {
		t.Fatalf("expected admin role, got %q", created.Role)
	}
	if created.CreatedBy != creator.ID {
		t.Fatalf("expected creator to be recorded")
	}
	if !created.EmailVerified {
		t.Fatalf("admin accounts skip verification")
	}

	_, err = svc.CreateAdmin(context.Background(), ports.CreateAdminInput{
		Username: "admin2", Password: "x", Email: "else@example.com",
	})
	if !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAdminService_DeleteUser_CascadesSessions(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := NewAdminService(repo, sessions, zerolog.Nop())
	admin := seedUser(t, repo, "root", domain.RoleAdmin)
	victim := seedUser(t, repo, "victim", domain.RoleUser)

	for i := 0; i < 3; i++ {
		if _, err := sessions.Insert(context.Background(), &domain.DesignSession{UserID: victim.ID}); err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}
	if _, err := sessions.Insert(context.Background(), &domain.DesignSession{UserID: admin.ID}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	if err := svc.DeleteUser(context.Background(), admin.ID, victim.ID); err != nil {
		t.Fatalf("DeleteUser returned error: %v", err)
	}

	left, _ := sessions.ListByUser(context.Background(), victim.ID)
	if len(left) != 0 {
		t.Fatalf("expected victim sessions cascaded, %d left", len(left))
	}
	if kept, _ := sessions.ListByUser(context.Background(), admin.ID); len(kept) != 1 {
		t.Fatalf("other users' sessions must survive")
	}
	if _, err := repo.FindByLogin(context.Background(), "victim"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("user record must be gone, got %v", err)
	}
}

func TestAdminService_SelfActionsRejected(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, newStubSessionRepo(), zerolog.Nop())
	admin := seedUser(t, repo, "root", domain.RoleAdmin)

	if err := svc.DeleteUser(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := svc.Promote(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfPromote) {
		t.Fatalf("expected ErrSelfPromote, got %v", err)
	}
	if err := svc.Demote(context.Background(), admin.ID, admin.ID); !errors.Is(err, domain.ErrSelfDemote) {
		t.Fatalf("expected ErrSelfDemote, got %v", err)
	}
}

func TestAdminService_PromoteDemote(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAdminService(repo, newStubSessionRepo(), zerolog.Nop())
	admin := seedUser(t, repo, "root", domain.RoleAdmin)
	user := seedUser(t, repo, "worker", domain.RoleUser)

	if err := svc.Promote(context.Background(), admin.ID, user.ID); err != nil {
		t.Fatalf("Promote returned error: %v", err)
	}
	if repo.users[user.ID].Role != domain.RoleAdmin {
		t.Fatalf("promotion did not apply")
	}
	if err := svc.Promote(context.Background(), admin.ID, user.ID); !errors.Is(err, domain.ErrAlreadyAdmin) {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}

	if err := svc.Demote(context.Background(), admin.ID, user.ID); err != nil {
		t.Fatalf("Demote returned error: %v", err)
	}
	if err := svc.Demote(context.Background(), admin.ID, user.ID); !errors.Is(err, domain.ErrAlreadyUser) {
		t.Fatalf("expected ErrAlreadyUser, got %v", err)
	}

	ghost := "64b000000000000000000000"
	if err := svc.Promote(context.Background(), admin.ID, ghost); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.DeleteUser(context.Background(), admin.ID, "bad-id"); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestAdminService_Stats(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionRepo()
	svc := NewAdminService(repo, sessions, zerolog.Nop())
	seedUser(t, repo, "root", domain.RoleAdmin)
	u := seedUser(t, repo, "worker", domain.RoleUser)

	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		_, err := sessions.Insert(context.Background(), &domain.DesignSession{
			UserID:    u.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed session: %v", err)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats.TotalUsers != 2 || stats.AdminUsers != 1 || stats.RegularUsers != 1 {
		t.Fatalf("unexpected user counts: %+v", stats)
	}
	if stats.TotalSessions != 12 {
		t.Fatalf("expected 12 sessions, got %d", stats.TotalSessions)
	}
	if len(stats.RecentSessions) != 10 {
		t.Fatalf("expected the 10 most recent sessions, got %d", len(stats.RecentSessions))
	}
	if !stats.RecentSessions[0].CreatedAt.After(stats.RecentSessions[9].CreatedAt) {
		t.Fatalf("recent sessions must be newest first")
	}
}
