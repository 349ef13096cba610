package repository

import (
	"context"
	"testing"

	"personalFinance/internal/db"
	"personalFinance/models"
)

func openDB(t *testing.T, name string) DBTX {
	t.Helper()
	d, err := db.Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestUserRepository_CRUDAndQueries(t *testing.T) {
	repo := NewUserRepository(openDB(t, "userrepo"))
	ctx := context.Background()

	// Create
	u, err := repo.Create(ctx, &models.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.ProfileID != 2 || u.CreatedAt == "" {
		t.Fatalf("unexpected created user: %+v", u)
	}

	// Duplicate email, case-insensitive
	_, err = repo.Create(ctx, &models.User{Name: "A2", Email: "ALICE@example.com", PasswordHash: "h"})
	if !IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}

	// GetByEmail
	g, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil || g == nil || g.ID != u.ID {
		t.Fatalf("get by email: %v %+v", err, g)
	}

	// Update
	g.Name = "Alice B"
	g.ProfileID = 1
	if err := repo.Update(ctx, g); err != nil {
		t.Fatalf("update: %v", err)
	}
	g2, _ := repo.GetByID(ctx, u.ID)
	if g2.Name != "Alice B" || g2.ProfileID != 1 {
		t.Fatalf("not updated: %+v", g2)
	}

	// List
	list, err := repo.List(ctx, 10, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}

	// Delete
	ok, err := repo.Delete(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	gone, err := repo.GetByID(ctx, u.ID)
	if err != nil || gone != nil {
		t.Fatalf("expected user deleted, got: %+v err=%v", gone, err)
	}
	ok, err = repo.Delete(ctx, u.ID)
	if err != nil || ok {
		t.Fatalf("second delete should report nothing deleted: %v %v", ok, err)
	}
}

func TestProfileRepository_DeleteInUse(t *testing.T) {
	d := openDB(t, "profilerepo")
	ctx := context.Background()
	profiles := NewProfileRepository(d)
	users := NewUserRepository(d)

	p, err := profiles.Create(ctx, "Auditor")
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}
	if _, err := users.Create(ctx, &models.User{Name: "Bo", Email: "bo@example.com", PasswordHash: "h", ProfileID: p.ID}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if _, err := profiles.Delete(ctx, p.ID); !IsForeignKeyViolation(err) {
		t.Fatalf("expected foreign key violation, got %v", err)
	}
	list, err := profiles.List(ctx)
	if err != nil || len(list) != 3 {
		t.Fatalf("list profiles: %v %+v", err, list)
	}
}
