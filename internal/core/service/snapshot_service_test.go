package service

import (
	"context"
	"errors"
	"testing"

	"github.com/hashdoctor/telehealth-api/internal/core/domain"
)

func TestSnapshotService_ExportCarriesVersion(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10", Name: "Someone"})
	chats := newStubChatRepo()
	_ = chats.Append(context.Background(), "AI_ASSISTANT:u-10", domain.Message{SenderID: "u-10", Text: "hi"})
	svc := NewSnapshotService(repo, chats, discardLogger)

	snap, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if snap.Version != domain.SnapshotVersion {
		t.Fatalf("version: expected %q, got %q", domain.SnapshotVersion, snap.Version)
	}
	if snap.Timestamp.IsZero() {
		t.Fatalf("export must be timestamped")
	}
	if len(snap.Users) != 1 || len(snap.Chats) != 1 {
		t.Fatalf("unexpected snapshot contents: %d users, %d threads", len(snap.Users), len(snap.Chats))
	}
}

func TestSnapshotService_RoundTrip(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10", Name: "Someone", WalletBalance: 40})
	chats := newStubChatRepo()
	_ = chats.Append(context.Background(), "u-02:u-10", domain.Message{SenderID: "u-10", Text: "hello"})
	svc := NewSnapshotService(repo, chats, discardLogger)

	snap, err := svc.Export(context.Background())
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if err := svc.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if count, _ := repo.Count(context.Background()); count != 0 {
		t.Fatalf("reset must wipe users")
	}

	if err := svc.Import(context.Background(), snap); err != nil {
		t.Fatalf("import: %v", err)
	}

	user, err := repo.FindByID(context.Background(), "u-10")
	if err != nil || user.WalletBalance != 40 {
		t.Fatalf("user not restored: %+v %v", user, err)
	}
	thread, _ := chats.Thread(context.Background(), "u-02:u-10")
	if len(thread) != 1 || thread[0].Text != "hello" {
		t.Fatalf("thread not restored: %+v", thread)
	}
}

func TestSnapshotService_ImportRejectsPartialSnapshot(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10"})
	chats := newStubChatRepo()
	svc := NewSnapshotService(repo, chats, discardLogger)

	cases := []*domain.Snapshot{
		nil,
		{Chats: map[string][]domain.Message{}},
		{Users: []domain.User{}},
	}
	for i, snap := range cases {
		if err := svc.Import(context.Background(), snap); !errors.Is(err, domain.ErrInvalidSnapshot) {
			t.Fatalf("case %d: expected ErrInvalidSnapshot, got %v", i, err)
		}
	}

	// The rejection happens before any write.
	if _, err := repo.FindByID(context.Background(), "u-10"); err != nil {
		t.Fatalf("rejected import must leave the store untouched: %v", err)
	}
}

func TestSnapshotService_ImportAcceptsEmptyCollections(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u-10"})
	svc := NewSnapshotService(repo, newStubChatRepo(), discardLogger)

	snap := &domain.Snapshot{Users: []domain.User{}, Chats: map[string][]domain.Message{}}
	if err := svc.Import(context.Background(), snap); err != nil {
		t.Fatalf("empty collections are a valid snapshot: %v", err)
	}
	if count, _ := repo.Count(context.Background()); count != 0 {
		t.Fatalf("import must overwrite wholesale")
	}
}
