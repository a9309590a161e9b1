package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubJobRepo struct {
	byID      map[string]*domain.Job
	nextID    int
	createErr error // if set, Create returns this error
}

func newStubJobRepo() *stubJobRepo {
	return &stubJobRepo{byID: make(map[string]*domain.Job)}
}

func (r *stubJobRepo) Create(_ context.Context, j *domain.Job) (*domain.Job, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *j
	clone.ID = fmt.Sprintf("job_%d", r.nextID)
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubJobRepo) FindByID(_ context.Context, id string) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) FindBySlug(_ context.Context, slug string) (*domain.Job, error) {
	for _, j := range r.byID {
		if j.Slug == slug {
			clone := *j
			return &clone, nil
		}
	}
	return nil, domain.ErrJobNotFound
}

func (r *stubJobRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, j := range r.byID {
		if j.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubJobRepo) Update(_ context.Context, j *domain.Job) error {
	if _, ok := r.byID[j.ID]; !ok {
		return domain.ErrJobNotFound
	}
	clone := *j
	r.byID[j.ID] = &clone
	return nil
}

func (r *stubJobRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(r.byID, id)
	return nil
}

// List applies the same filters the real Mongo repo would use.
func (r *stubJobRepo) List(_ context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	var matched []*domain.Job
	now := time.Now().UTC()
	for _, j := range r.byID {
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.Category != "" && j.Category != f.Category {
			continue
		}
		if f.JobType != "" && j.JobType != f.JobType {
			continue
		}
		if f.Location != "" && j.Location != f.Location {
			continue
		}
		if f.PostedBy != "" && j.PostedBy != f.PostedBy {
			continue
		}
		if f.Unexpired && j.Expired(now) {
			continue
		}
		if f.Search != "" {
			titleMatch := strings.Contains(strings.ToLower(j.Title), strings.ToLower(f.Search))
			companyMatch := strings.Contains(strings.ToLower(j.Company), strings.ToLower(f.Search))
			if !titleMatch && !companyMatch {
				continue
			}
		}
		clone := *j
		matched = append(matched, &clone)
	}
	return matched, int64(len(matched)), nil
}

func (r *stubJobRepo) UpdateStatusIfPending(_ context.Context, id string, review ports.ReviewUpdate) (*domain.Job, error) {
	j, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	if j.Status != domain.JobPending {
		return nil, domain.ErrReviewConflict
	}
	j.Status = review.Status
	j.ReviewedBy = review.ReviewerID
	j.RejectionReason = review.Reason
	at := review.ReviewedAt
	j.ReviewedAt = &at
	clone := *j
	return &clone, nil
}

func (r *stubJobRepo) IncrementViews(_ context.Context, id string, delta int64) error {
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.Views += delta
	return nil
}

func (r *stubJobRepo) IncrementApplicationCount(_ context.Context, id string, delta int64) error {
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ApplicationCount += delta
	return nil
}

func (r *stubJobRepo) SetApplicationCount(_ context.Context, id string, count int64) error {
	j, ok := r.byID[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	j.ApplicationCount = count
	return nil
}

func (r *stubJobRepo) CountByStatus(_ context.Context) (map[domain.JobStatus]int64, error) {
	out := make(map[domain.JobStatus]int64)
	for _, j := range r.byID {
		out[j.Status]++
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func creatorActor(id string) ports.Actor {
	return ports.Actor{
		ID:          id,
		Kind:        domain.KindUser,
		Role:        domain.RoleContentCreator,
		Permissions: []domain.Permission{domain.PermCreateJobs, domain.PermCreateNews, domain.PermEditOwnContent, domain.PermDeleteOwnContent},
	}
}

func editorActor(id string) ports.Actor {
	return ports.Actor{
		ID:          id,
		Kind:        domain.KindAdmin,
		Role:        domain.RoleEditor,
		Permissions: []domain.Permission{domain.PermManageJobs, domain.PermManageNews, domain.PermManageApplications, domain.PermViewAnalytics},
	}
}

func minimalJobInput(actor ports.Actor, title string) ports.CreateJobInput {
	return ports.CreateJobInput{
		Actor:        actor,
		Title:        title,
		Company:      "Magadh Tech",
		Description:  "Looking for a Go developer.",
		Category:     domain.JobCategoryIT,
		JobType:      domain.JobTypeFullTime,
		Location:     domain.JobLocationGaya,
		ContactEmail: "hr@magadhtech.example",
		ExpiresAt:    time.Now().UTC().AddDate(0, 1, 0),
	}
}

func seedJob(repo *stubJobRepo, postedBy string, status domain.JobStatus) *domain.Job {
	repo.nextID++
	now := time.Now().UTC()
	j := &domain.Job{
		ID:           fmt.Sprintf("job_%d", repo.nextID),
		Title:        "Seeded Job",
		Slug:         fmt.Sprintf("seeded-job-%d", repo.nextID),
		Company:      "Magadh Tech",
		Category:     domain.JobCategoryIT,
		JobType:      domain.JobTypeFullTime,
		Location:     domain.JobLocationGaya,
		PostedBy:     postedBy,
		Status:       status,
		ExpiresAt:    now.AddDate(0, 1, 0),
		ContactEmail: "hr@magadhtech.example",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	repo.byID[j.ID] = j
	return j
}

// ---------------------------------------------------------------------------
// Create tests
// ---------------------------------------------------------------------------

func TestJobService_Create_UserEntersPending(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	job, err := svc.Create(context.Background(), minimalJobInput(creatorActor("u1"), "Go Developer"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobPending {
		t.Errorf("expected status %q, got %q", domain.JobPending, job.Status)
	}
	if job.Slug != "go-developer" {
		t.Errorf("expected slug %q, got %q", "go-developer", job.Slug)
	}
	if job.ReviewedBy != "" || job.ReviewedAt != nil {
		t.Error("a pending job must not carry review fields")
	}
}

func TestJobService_Create_AdminPostsApproved(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	job, err := svc.Create(context.Background(), minimalJobInput(editorActor("a1"), "Clerk"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Status != domain.JobApproved {
		t.Errorf("expected status %q, got %q", domain.JobApproved, job.Status)
	}
	if job.ReviewedBy != "a1" || job.ReviewedAt == nil {
		t.Error("an admin-posted job must record the poster as reviewer")
	}
}

func TestJobService_Create_WithoutPermission(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	actor := ports.Actor{ID: "u1", Kind: domain.KindUser, Role: domain.RoleUser}
	_, err := svc.Create(context.Background(), minimalJobInput(actor, "Go Developer"))
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobService_Create_PastExpiry(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	in := minimalJobInput(creatorActor("u1"), "Go Developer")
	in.ExpiresAt = time.Now().UTC().Add(-time.Hour)
	_, err := svc.Create(context.Background(), in)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestJobService_Create_SlugCollisionGetsSuffix(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	first, err := svc.Create(context.Background(), minimalJobInput(creatorActor("u1"), "Go Developer"))
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	second, err := svc.Create(context.Background(), minimalJobInput(creatorActor("u2"), "Go Developer"))
	if err != nil {
		t.Fatalf("second create failed: %v", err)
	}
	if second.Slug == first.Slug {
		t.Errorf("expected distinct slugs, both got %q", first.Slug)
	}
	if !strings.HasPrefix(second.Slug, "go-developer-") {
		t.Errorf("expected suffixed slug, got %q", second.Slug)
	}
}

// ---------------------------------------------------------------------------
// Update and delete tests
// ---------------------------------------------------------------------------

func TestJobService_Update_OwnerEditsPending(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	newTitle := "Senior Go Developer"
	updated, err := svc.Update(context.Background(), ports.UpdateJobInput{
		Actor: creatorActor("u1"),
		JobID: job.ID,
		Title: &newTitle,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("expected title %q, got %q", newTitle, updated.Title)
	}
	if updated.Slug != "senior-go-developer" {
		t.Errorf("title change must re-derive the slug, got %q", updated.Slug)
	}
}

func TestJobService_Update_ApprovedIsFrozen(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobApproved)

	newTitle := "Edited"
	_, err := svc.Update(context.Background(), ports.UpdateJobInput{
		Actor: creatorActor("u1"),
		JobID: job.ID,
		Title: &newTitle,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for approved job, got %v", err)
	}
}

func TestJobService_Update_NonOwnerForbidden(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	newTitle := "Hijacked"
	_, err := svc.Update(context.Background(), ports.UpdateJobInput{
		Actor: creatorActor("u2"),
		JobID: job.ID,
		Title: &newTitle,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobService_Delete_OwnerBeforeApproval(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	if err := svc.Delete(context.Background(), ports.DeleteJobInput{Actor: creatorActor("u1"), JobID: job.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := repo.byID[job.ID]; ok {
		t.Error("job should have been deleted")
	}
}

func TestJobService_Delete_OwnerCannotRemoveApproved(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobApproved)

	err := svc.Delete(context.Background(), ports.DeleteJobInput{Actor: creatorActor("u1"), JobID: job.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestJobService_Delete_ModeratorRemovesAnything(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobApproved)

	if err := svc.Delete(context.Background(), ports.DeleteJobInput{Actor: editorActor("a1"), JobID: job.ID}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// ---------------------------------------------------------------------------
// Visibility tests
// ---------------------------------------------------------------------------

func TestJobService_Get_PendingHiddenFromPublic(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	_, err := svc.Get(context.Background(), ports.GetJobInput{Slug: job.Slug})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for anonymous caller, got %v", err)
	}

	// The owner and a moderator both see it.
	if _, err := svc.Get(context.Background(), ports.GetJobInput{Actor: creatorActor("u1"), Slug: job.Slug}); err != nil {
		t.Errorf("owner should see own pending job: %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.GetJobInput{Actor: editorActor("a1"), Slug: job.Slug}); err != nil {
		t.Errorf("moderator should see pending job: %v", err)
	}
}

func TestJobService_Get_ExpiredHiddenFromPublic(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobApproved)
	repo.byID[job.ID].ExpiresAt = time.Now().UTC().Add(-time.Hour)

	_, err := svc.Get(context.Background(), ports.GetJobInput{Slug: job.Slug})
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound for expired job, got %v", err)
	}

	// The owner and a moderator still see the expired posting.
	if _, err := svc.Get(context.Background(), ports.GetJobInput{Actor: creatorActor("u1"), Slug: job.Slug}); err != nil {
		t.Errorf("owner should see own expired job: %v", err)
	}
	if _, err := svc.Get(context.Background(), ports.GetJobInput{Actor: editorActor("a1"), Slug: job.Slug}); err != nil {
		t.Errorf("moderator should see expired job: %v", err)
	}
}

func TestJobService_ListPublic_OnlyApprovedUnexpired(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	seedJob(repo, "u1", domain.JobApproved)
	seedJob(repo, "u1", domain.JobPending)
	expired := seedJob(repo, "u1", domain.JobApproved)
	expired.ExpiresAt = time.Now().UTC().Add(-time.Hour)

	jobs, page, err := svc.ListPublic(context.Background(), ports.ListJobsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 public job, got %d", len(jobs))
	}
	if jobs[0].Status != domain.JobApproved {
		t.Errorf("public listing leaked status %q", jobs[0].Status)
	}
	if page.Limit != 20 {
		t.Errorf("expected default limit 20, got %d", page.Limit)
	}
}

func TestJobService_ModerationQueue_RequiresManageJobs(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)

	_, _, err := svc.ModerationQueue(context.Background(), ports.ModerationQueueInput{Actor: creatorActor("u1")})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Moderation tests
// ---------------------------------------------------------------------------

func TestJobService_Approve_Success(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	approved, err := svc.Approve(context.Background(), ports.ApproveJobInput{Actor: editorActor("a1"), JobID: job.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approved.Status != domain.JobApproved {
		t.Errorf("expected status %q, got %q", domain.JobApproved, approved.Status)
	}
	if approved.ReviewedBy != "a1" {
		t.Errorf("expected reviewer a1, got %q", approved.ReviewedBy)
	}
	if approved.ReviewedAt == nil {
		t.Error("ReviewedAt must be set")
	}
}

func TestJobService_Approve_SelfReviewForbidden(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "a1", domain.JobPending)

	_, err := svc.Approve(context.Background(), ports.ApproveJobInput{Actor: editorActor("a1"), JobID: job.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for self-review, got %v", err)
	}
}

func TestJobService_Reject_RequiresReason(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	_, err := svc.Reject(context.Background(), ports.RejectJobInput{Actor: editorActor("a1"), JobID: job.ID})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for empty reason, got %v", err)
	}
}

func TestJobService_Reject_PersistsReason(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	rejected, err := svc.Reject(context.Background(), ports.RejectJobInput{
		Actor:  editorActor("a1"),
		JobID:  job.ID,
		Reason: "salary missing",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != domain.JobRejected {
		t.Errorf("expected status %q, got %q", domain.JobRejected, rejected.Status)
	}
	if rejected.RejectionReason != "salary missing" {
		t.Errorf("expected reason to be persisted, got %q", rejected.RejectionReason)
	}
}

func TestJobService_Review_LosingRaceConflicts(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	if _, err := svc.Approve(context.Background(), ports.ApproveJobInput{Actor: editorActor("a1"), JobID: job.ID}); err != nil {
		t.Fatalf("first review failed: %v", err)
	}

	// The second reviewer loses the compare-and-swap.
	_, err := svc.Reject(context.Background(), ports.RejectJobInput{
		Actor:  editorActor("a2"),
		JobID:  job.ID,
		Reason: "duplicate posting",
	})
	if !errors.Is(err, domain.ErrInvalidTransition) && !errors.Is(err, domain.ErrReviewConflict) {
		t.Fatalf("expected transition or review conflict, got %v", err)
	}
}

func TestJobService_Review_WithoutPermission(t *testing.T) {
	repo := newStubJobRepo()
	svc := NewJobService(repo, discardLogger)
	job := seedJob(repo, "u1", domain.JobPending)

	_, err := svc.Approve(context.Background(), ports.ApproveJobInput{Actor: creatorActor("u2"), JobID: job.ID})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
