package repository

import (
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v4"

	"github.com/HassanAli010/UserPref-CRS/internal/models"
)

func newTestBadgerRepo(t *testing.T) UserRepository {
	t.Helper()

	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("badger.Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewBadgerUserRepository(db)
}

func TestBadgerCreateAndFind(t *testing.T) {
	repo := newTestBadgerRepo(t)

	err := repo.CreateUser(&models.User{Username: "alice", Password: "hashed"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	user, err := repo.FindUserByUsername("alice")
	if err != nil {
		t.Fatalf("FindUserByUsername: %v", err)
	}
	if user == nil || user.Username != "alice" {
		t.Fatalf("expected alice, got %+v", user)
	}
	if user.History == nil {
		t.Fatal("expected non-nil history")
	}

	if err := repo.CreateUser(&models.User{Username: "alice"}); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	missing, err := repo.FindUserByUsername("ghost")
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil for missing user, got %v, %v", missing, err)
	}
}

func TestBadgerAppendHistoryIdempotent(t *testing.T) {
	repo := newTestBadgerRepo(t)
	if err := repo.CreateUser(&models.User{Username: "alice"}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.AppendHistory("alice", "Data Science"); err != nil {
			t.Fatalf("AppendHistory call %d: %v", i+1, err)
		}
	}
	if err := repo.AppendHistory("alice", "Python Basics"); err != nil {
		t.Fatalf("AppendHistory: %v", err)
	}

	history, _ := repo.GetHistory("alice")
	if len(history) != 2 || history[0] != "Data Science" || history[1] != "Python Basics" {
		t.Fatalf("unexpected history %v", history)
	}
}

func TestBadgerAppendHistoryUnknownUser(t *testing.T) {
	repo := newTestBadgerRepo(t)

	if err := repo.AppendHistory("ghost", "CourseA"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestBadgerClearAndDelete(t *testing.T) {
	repo := newTestBadgerRepo(t)
	if err := repo.CreateUser(&models.User{Username: "alice", History: []string{"X", "Y"}}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := repo.ClearHistory("alice"); err != nil {
		t.Fatalf("ClearHistory: %v", err)
	}
	history, _ := repo.GetHistory("alice")
	if len(history) != 0 {
		t.Fatalf("expected empty history after clear, got %v", history)
	}

	if err := repo.DeleteUser("alice"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if err := repo.DeleteUser("alice"); !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("expected ErrUnknownUser, got %v", err)
	}
}

func TestBadgerListUsersIsDeterministic(t *testing.T) {
	repo := newTestBadgerRepo(t)

	for _, name := range []string{"carol", "alice", "bob"} {
		if err := repo.CreateUser(&models.User{Username: name}); err != nil {
			t.Fatalf("CreateUser(%q): %v", name, err)
		}
	}

	users, err := repo.ListUsers()
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	// Badger iterates keys lexicographically.
	want := []string{"alice", "bob", "carol"}
	if len(users) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(users))
	}
	for i, user := range users {
		if user.Username != want[i] {
			t.Fatalf("expected user %d to be %s, got %s", i, want[i], user.Username)
		}
	}
}
