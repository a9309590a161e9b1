package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/apnajourney/platform/internal/core/domain"
	"github.com/apnajourney/platform/internal/core/ports"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type mongoJob struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	Title            string             `bson:"title"`
	Slug             string             `bson:"slug"`
	Company          string             `bson:"company"`
	Description      string             `bson:"description"`
	Category         string             `bson:"category"`
	JobType          string             `bson:"job_type"`
	Location         string             `bson:"location"`
	Salary           string             `bson:"salary,omitempty"`
	Requirements     []string           `bson:"requirements"`
	ContactEmail     string             `bson:"contact_email"`
	ContactPhone     string             `bson:"contact_phone,omitempty"`
	PostedBy         string             `bson:"posted_by"`
	Status           string             `bson:"status"`
	Views            int64              `bson:"views"`
	ApplicationCount int64              `bson:"application_count"`
	ExpiresAt        time.Time          `bson:"expires_at"`
	RejectionReason  string             `bson:"rejection_reason,omitempty"`
	ReviewedBy       string             `bson:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time         `bson:"reviewed_at,omitempty"`
	CreatedAt        time.Time          `bson:"created_at"`
	UpdatedAt        time.Time          `bson:"updated_at"`
}

func toMongoJob(j *domain.Job) mongoJob {
	return mongoJob{
		Title:            j.Title,
		Slug:             j.Slug,
		Company:          j.Company,
		Description:      j.Description,
		Category:         j.Category,
		JobType:          j.JobType,
		Location:         j.Location,
		Salary:           j.Salary,
		Requirements:     j.Requirements,
		ContactEmail:     j.ContactEmail,
		ContactPhone:     j.ContactPhone,
		PostedBy:         j.PostedBy,
		Status:           string(j.Status),
		Views:            j.Views,
		ApplicationCount: j.ApplicationCount,
		ExpiresAt:        j.ExpiresAt.UTC(),
		RejectionReason:  j.RejectionReason,
		ReviewedBy:       j.ReviewedBy,
		ReviewedAt:       j.ReviewedAt,
		CreatedAt:        j.CreatedAt.UTC(),
		UpdatedAt:        j.UpdatedAt.UTC(),
	}
}

func (m mongoJob) toDomain() *domain.Job {
	return &domain.Job{
		ID:               m.ID.Hex(),
		Title:            m.Title,
		Slug:             m.Slug,
		Company:          m.Company,
		Description:      m.Description,
		Category:         m.Category,
		JobType:          m.JobType,
		Location:         m.Location,
		Salary:           m.Salary,
		Requirements:     m.Requirements,
		ContactEmail:     m.ContactEmail,
		ContactPhone:     m.ContactPhone,
		PostedBy:         m.PostedBy,
		Status:           domain.JobStatus(m.Status),
		Views:            m.Views,
		ApplicationCount: m.ApplicationCount,
		ExpiresAt:        m.ExpiresAt,
		RejectionReason:  m.RejectionReason,
		ReviewedBy:       m.ReviewedBy,
		ReviewedAt:       m.ReviewedAt,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoJob(j))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert job: %w", err)
	}

	out := *j
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *JobRepository) FindBySlug(ctx context.Context, slug string) (*domain.Job, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *JobRepository) findOne(ctx context.Context, filter bson.M) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoJob
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return m.toDomain(), nil
}

func (r *JobRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return n > 0, nil
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	oid, err := primitive.ObjectIDFromHex(j.ID)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := toMongoJob(j)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) List(ctx context.Context, f ports.ListJobsFilter) ([]*domain.Job, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.JobType != "" {
		filter["job_type"] = f.JobType
	}
	if f.Location != "" {
		filter["location"] = f.Location
	}
	if f.PostedBy != "" {
		filter["posted_by"] = f.PostedBy
	}
	if f.Unexpired {
		filter["expires_at"] = bson.M{"$gt": time.Now().UTC()}
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	page := f.Page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Number - 1) * page.Limit)).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var m mongoJob
		if err := cur.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, m.toDomain())
	}
	return jobs, total, cur.Err()
}

// UpdateStatusIfPending applies a review decision as a single findAndModify
// guarded on status=pending, so two concurrent reviewers cannot both win.
func (r *JobRepository) UpdateStatusIfPending(ctx context.Context, id string, review ports.ReviewUpdate) (*domain.Job, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.JobPending)}
	update := bson.M{"$set": bson.M{
		"status":           string(review.Status),
		"reviewed_by":      review.ReviewerID,
		"rejection_reason": review.Reason,
		"reviewed_at":      review.ReviewedAt.UTC(),
		"updated_at":       review.ReviewedAt.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoJob
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Distinguish a lost race from a missing document.
			n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
			if cerr != nil {
				return nil, fmt.Errorf("review job: %w", cerr)
			}
			if n == 0 {
				return nil, domain.ErrJobNotFound
			}
			return nil, domain.ErrReviewConflict
		}
		return nil, fmt.Errorf("review job: %w", err)
	}
	return m.toDomain(), nil
}

func (r *JobRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	return r.increment(ctx, id, "views", delta)
}

func (r *JobRepository) IncrementApplicationCount(ctx context.Context, id string, delta int64) error {
	return r.increment(ctx, id, "application_count", delta)
}

func (r *JobRepository) SetApplicationCount(ctx context.Context, id string, count int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"application_count": count}})
	if err != nil {
		return fmt.Errorf("set application_count: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) increment(ctx context.Context, id, field string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrJobNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: delta}})
	if err != nil {
		return fmt.Errorf("increment %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) CountByStatus(ctx context.Context) (map[domain.JobStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[domain.JobStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		out[domain.JobStatus(row.Status)] = row.Count
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "expires_at", Value: 1}}},
		{Keys: bson.D{{Key: "posted_by", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "company", Value: "text"},
			{Key: "description", Value: "text"},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
