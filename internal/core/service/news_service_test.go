package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubNewsRepo struct {
	byID   map[string]*domain.News
	nextID int
}

func newStubNewsRepo() *stubNewsRepo {
	return &stubNewsRepo{byID: make(map[string]*domain.News)}
}

func (r *stubNewsRepo) Create(_ context.Context, n *domain.News) (*domain.News, error) {
	r.nextID++
	clone := *n
	clone.ID = fmt.Sprintf("news_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubNewsRepo) FindByID(_ context.Context, id string) (*domain.News, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNewsNotFound
	}
	clone := *n
	return &clone, nil
}

func (r *stubNewsRepo) FindBySlug(_ context.Context, slug string) (*domain.News, error) {
	for _, n := range r.byID {
		if n.Slug == slug {
			clone := *n
			return &clone, nil
		}
	}
	return nil, domain.ErrNewsNotFound
}

func (r *stubNewsRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, n := range r.byID {
		if n.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubNewsRepo) Update(_ context.Context, n *domain.News) error {
	if _, ok := r.byID[n.ID]; !ok {
		return domain.ErrNewsNotFound
	}
	clone := *n
	r.byID[n.ID] = &clone
	return nil
}

func (r *stubNewsRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNewsNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubNewsRepo) List(_ context.Context, f ports.ListNewsFilter) ([]*domain.News, int64, error) {
	var matched []*domain.News
	for _, n := range r.byID {
		if f.Status != "" && n.Status != f.Status {
			continue
		}
		if f.Category != "" && n.Category != f.Category {
			continue
		}
		if f.Language != "" && n.Language != f.Language {
			continue
		}
		if f.Author != "" && n.Author != f.Author {
			continue
		}
		if f.Featured != nil && n.IsFeatured != *f.Featured {
			continue
		}
		if f.Tag != "" {
			found := false
			for _, tag := range n.Tags {
				if tag == f.Tag {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(f.Search)) {
			continue
		}
		clone := *n
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubNewsRepo) UpdateStatusIfPending(_ context.Context, id string, review ports.NewsReviewUpdate) (*domain.News, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNewsNotFound
	}
	if n.Status != domain.NewsPending {
		return nil, domain.ErrReviewConflict
	}
	n.Status = review.Status
	n.ReviewedBy = review.ReviewerID
	n.RejectionReason = review.Reason
	at := review.ReviewedAt
	n.ReviewedAt = &at
	clone := *n
	return &clone, nil
}

func (r *stubNewsRepo) Publish(_ context.Context, id string, expectFrom domain.NewsStatus, at time.Time) (*domain.News, error) {
	n, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNewsNotFound
	}
	if n.Status != expectFrom {
		return nil, domain.ErrReviewConflict
	}
	n.Status = domain.NewsPublished
	if n.PublishedAt == nil {
		n.PublishedAt = &at
	}
	clone := *n
	return &clone, nil
}

func (r *stubNewsRepo) IncrementViews(_ context.Context, id string, delta int64) error {
	n, ok := r.byID[id]
	if !ok {
		return domain.ErrNewsNotFound
	}
	n.Views += delta
	return nil
}

func (r *stubNewsRepo) CountByStatus(_ context.Context) (map[domain.NewsStatus]int64, error) {
	out := make(map[domain.NewsStatus]int64)
	for _, n := range r.byID {
		out[n.Status]++
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func minimalNewsInput(actor ports.Actor, title string) ports.CreateNewsInput {
	return ports.CreateNewsInput{
		Actor:    actor,
		Title:    title,
		Excerpt:  "Short summary.",
		Content:  "Full article body.",
		Category: domain.NewsCategoryLocal,
		Language: domain.LangHindi,
	}
}

func seedNews(repo *stubNewsRepo, author string, status domain.NewsStatus) *domain.News {
	repo.nextID++
	now := time.Now().UTC()
	n := &domain.News{
		ID:        fmt.Sprintf("news_%d", repo.nextID),
		Title:     "Seeded Article",
		Slug:      fmt.Sprintf("seeded-article-%d", repo.nextID),
		Excerpt:   "Summary.",
		Content:   "Body.",
		Category:  domain.NewsCategoryLocal,
		Language:  domain.LangHindi,
		Author:    author,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if status == domain.NewsPublished {
		n.PublishedAt = &now
	}
	repo.byID[n.ID] = n
	return n
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestNewsService_Create_UserEntersPending(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)

	article, err := svc.Create(context.Background(), minimalNewsInput(creatorActor("u1"), "Gaya Market Reopens"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article.Status != domain.NewsPending {
		t.Errorf("expected status %q, got %q", domain.NewsPending, article.Status)
	}
	if article.PublishedAt != nil {
		t.Error("pending article must not carry published_at")
	}
}

func TestNewsService_Create_UserDraft(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)

	in := minimalNewsInput(creatorActor("u1"), "Draft Article")
	in.Draft = true
	article, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article.Status != domain.NewsDraft {
		t.Errorf("expected status %q, got %q", domain.NewsDraft, article.Status)
	}
}

func TestNewsService_Create_UserCannotPublishDirectly(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)

	in := minimalNewsInput(creatorActor("u1"), "Sneaky")
	in.Publish = true
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNewsService_Create_AdminPublishesDirectly(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)

	article, err := svc.Create(context.Background(), minimalNewsInput(editorActor("a1"), "Official Notice"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if article.Status != domain.NewsPublished {
		t.Errorf("expected status %q, got %q", domain.NewsPublished, article.Status)
	}
	if article.PublishedAt == nil {
		t.Error("directly published article must carry published_at")
	}
}

func TestNewsService_Create_DraftAndPublishConflict(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)

	in := minimalNewsInput(editorActor("a1"), "Contradiction")
	in.Draft = true
	in.Publish = true
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Lifecycle tests
// ---------------------------------------------------------------------------

func TestNewsService_Submit_DraftToPending(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsDraft)

	submitted, err := svc.Submit(context.Background(), ports.SubmitNewsInput{Actor: creatorActor("u1"), NewsID: article.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if submitted.Status != domain.NewsPending {
		t.Errorf("expected status %q, got %q", domain.NewsPending, submitted.Status)
	}
}

func TestNewsService_Submit_RejectedCannotResubmit(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsRejected)

	_, err := svc.Submit(context.Background(), ports.SubmitNewsInput{Actor: creatorActor("u1"), NewsID: article.ID})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNewsService_Approve_LeavesArticleUnpublished(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPending)

	approved, err := svc.Approve(context.Background(), ports.ApproveNewsInput{Actor: editorActor("a1"), NewsID: article.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Status != domain.NewsApproved {
		t.Errorf("expected status %q, got %q", domain.NewsApproved, approved.Status)
	}
	if approved.PublishedAt != nil {
		t.Error("approval must not set published_at")
	}

	// Approved but unpublished articles stay off the public surface.
	items, _, err := svc.ListPublic(context.Background(), ports.ListNewsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("approved article leaked to public listing")
	}
}

func TestNewsService_Publish_SetsPublishedAtOnce(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsApproved)

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	stored := repo.byID[article.ID]
	stored.PublishedAt = &first // simulates an earlier publish cycle

	published, err := svc.Publish(context.Background(), ports.PublishNewsInput{Actor: editorActor("a1"), NewsID: article.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if published.Status != domain.NewsPublished {
		t.Errorf("expected status %q, got %q", domain.NewsPublished, published.Status)
	}
	if published.PublishedAt == nil || !published.PublishedAt.Equal(first) {
		t.Errorf("published_at must never be overwritten: got %v, want %v", published.PublishedAt, first)
	}
}

func TestNewsService_Publish_PendingNotPublishable(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPending)

	_, err := svc.Publish(context.Background(), ports.PublishNewsInput{Actor: editorActor("a1"), NewsID: article.ID})
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNewsService_Reject_RequiresReason(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPending)

	_, err := svc.Reject(context.Background(), ports.RejectNewsInput{Actor: editorActor("a1"), NewsID: article.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestNewsService_Review_AuthorCannotSelfReview(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "a1", domain.NewsPending)

	_, err := svc.Approve(context.Background(), ports.ApproveNewsInput{Actor: editorActor("a1"), NewsID: article.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNewsService_Feature_Toggle(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPublished)

	featured, err := svc.Feature(context.Background(), ports.FeatureNewsInput{Actor: editorActor("a1"), NewsID: article.ID, Featured: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !featured.IsFeatured {
		t.Error("expected article to be featured")
	}

	// The featured filter on the public listing now selects it.
	want := true
	items, _, err := svc.ListPublic(context.Background(), ports.ListNewsInput{Featured: &want})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != article.ID {
		t.Fatalf("expected the featured article in the listing, got %d items", len(items))
	}

	unfeatured, err := svc.Feature(context.Background(), ports.FeatureNewsInput{Actor: editorActor("a1"), NewsID: article.ID, Featured: false})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unfeatured.IsFeatured {
		t.Error("expected article to be unfeatured again")
	}
}

func TestNewsService_Feature_RequiresManageNews(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPublished)

	_, err := svc.Feature(context.Background(), ports.FeatureNewsInput{Actor: creatorActor("u1"), NewsID: article.ID, Featured: true})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Visibility tests
// ---------------------------------------------------------------------------

func TestNewsService_Get_DraftHiddenFromPublic(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsDraft)

	_, err := svc.Get(context.Background(), ports.GetNewsInput{Slug: article.Slug})
	if !errors.Is(err, domain.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound for anonymous caller, got %v", err)
	}

	if _, err := svc.Get(context.Background(), ports.GetNewsInput{Actor: creatorActor("u1"), Slug: article.Slug}); err != nil {
		t.Errorf("author should see own draft: %v", err)
	}
}

func TestNewsService_ListPublic_PublishedOnly(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	seedNews(repo, "u1", domain.NewsPublished)
	seedNews(repo, "u1", domain.NewsApproved)
	seedNews(repo, "u1", domain.NewsDraft)

	items, _, err := svc.ListPublic(context.Background(), ports.ListNewsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 public article, got %d", len(items))
	}
	if items[0].Status != domain.NewsPublished {
		t.Errorf("public listing leaked status %q", items[0].Status)
	}
}

func TestNewsService_Update_PublishedIsFrozenForAuthor(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPublished)

	newTitle := "Edited"
	_, err := svc.Update(context.Background(), ports.UpdateNewsInput{
		Actor:  creatorActor("u1"),
		NewsID: article.ID,
		Title:  &newTitle,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNewsService_Delete_AuthorCannotRemovePublished(t *testing.T) {
	repo := newStubNewsRepo()
	svc := NewNewsService(repo, discardLogger)
	article := seedNews(repo, "u1", domain.NewsPublished)

	err := svc.Delete(context.Background(), ports.DeleteNewsInput{Actor: creatorActor("u1"), NewsID: article.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), ports.DeleteNewsInput{Actor: editorActor("a1"), NewsID: article.ID}); err != nil {
		t.Errorf("moderator delete failed: %v", err)
	}
}
