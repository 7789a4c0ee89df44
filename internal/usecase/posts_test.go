package usecase_test

import (
	. "github.com/openlodge/clubadmin/internal/usecase"

	"context"
	"errors"
	"testing"

	domainErrors "github.com/openlodge/clubadmin/internal/domain/errors"
	"github.com/openlodge/clubadmin/internal/domain/model"
	testhelpers "github.com/openlodge/clubadmin/internal/test"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":            "hello-world",
		"  Annual Meeting 2026 ": "annual-meeting-2026",
		"Größe & Test!":          "gr-e-test",
		"---":                    "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPostCreateAndGet(t *testing.T) {
	uc := NewPostUseCase(testhelpers.NewPostRepositoryStub())

	p, err := uc.Create(context.Background(), 3, "First Post", "body text")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if p.Slug != "first-post" || p.Revision != 1 || p.State != model.PostStateDraft {
		t.Fatalf("unexpected post: %+v", p)
	}

	got, err := uc.Get(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if got.ID != p.ID {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestPostCreateEmptyTitle(t *testing.T) {
	uc := NewPostUseCase(testhelpers.NewPostRepositoryStub())
	if _, err := uc.Create(context.Background(), 1, "   ", "body"); err != domainErrors.ErrInvalidField {
		t.Fatalf("expected ErrInvalidField, got %v", err)
	}
}

func TestPostSaveDraftIncrementsRevision(t *testing.T) {
	repo := testhelpers.NewPostRepositoryStub()
	uc := NewPostUseCase(repo)
	p, _ := uc.Create(context.Background(), 1, "Draft", "v1")

	saved, err := uc.SaveDraft(context.Background(), p.ID, model.PostDraft{Title: "Draft", Body: "v2", Revision: 1})
	if err != nil {
		t.Fatalf("save draft returned error: %v", err)
	}
	if saved.Revision != 2 || saved.Body != "v2" {
		t.Fatalf("unexpected post after save: %+v", saved)
	}
}

func TestPostSaveDraftStaleRevisionReturnsCurrentCopy(t *testing.T) {
	repo := testhelpers.NewPostRepositoryStub()
	uc := NewPostUseCase(repo)
	p, _ := uc.Create(context.Background(), 1, "Draft", "v1")
	if _, err := uc.SaveDraft(context.Background(), p.ID, model.PostDraft{Title: "Draft", Body: "v2", Revision: 1}); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	current, err := uc.SaveDraft(context.Background(), p.ID, model.PostDraft{Title: "Draft", Body: "lost edit", Revision: 1})
	if !errors.Is(err, domainErrors.ErrRevisionConflict) {
		t.Fatalf("expected ErrRevisionConflict, got %v", err)
	}
	if current == nil || current.Body != "v2" {
		t.Fatalf("expected the current copy alongside the conflict, got %+v", current)
	}
}

func TestPostPublishLifecycle(t *testing.T) {
	repo := testhelpers.NewPostRepositoryStub()
	uc := NewPostUseCase(repo)
	p, _ := uc.Create(context.Background(), 1, "Launch", "body")

	published, err := uc.Publish(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("publish returned error: %v", err)
	}
	if published.State != model.PostStatePublished || published.PublishedAt == nil {
		t.Fatalf("unexpected post after publish: %+v", published)
	}

	if _, err := uc.Publish(context.Background(), p.ID); err != domainErrors.ErrInvalidStateTransition {
		t.Fatalf("double publish: expected ErrInvalidStateTransition, got %v", err)
	}

	back, err := uc.Unpublish(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("unpublish returned error: %v", err)
	}
	if back.State != model.PostStateDraft || back.PublishedAt != nil {
		t.Fatalf("unexpected post after unpublish: %+v", back)
	}
}
