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

const collectionNews = "news"

type NewsRepository struct {
	col *mongo.Collection
}

func NewNewsRepository(db *mongo.Database) *NewsRepository {
	return &NewsRepository{col: db.Collection(collectionNews)}
}

type mongoNews struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Slug            string             `bson:"slug"`
	Excerpt         string             `bson:"excerpt"`
	Content         string             `bson:"content"`
	FeaturedImage   string             `bson:"featured_image,omitempty"`
	Category        string             `bson:"category"`
	Tags            []string           `bson:"tags,omitempty"`
	Language        string             `bson:"language"`
	Author          string             `bson:"author"`
	Status          string             `bson:"status"`
	IsFeatured      bool               `bson:"is_featured"`
	Views           int64              `bson:"views"`
	PublishedAt     *time.Time         `bson:"published_at,omitempty"`
	RejectionReason string             `bson:"rejection_reason,omitempty"`
	ReviewedBy      string             `bson:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time         `bson:"reviewed_at,omitempty"`
	SEOTitle        string             `bson:"seo_title,omitempty"`
	SEODescription  string             `bson:"seo_description,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func toMongoNews(n *domain.News) mongoNews {
	return mongoNews{
		Title:           n.Title,
		Slug:            n.Slug,
		Excerpt:         n.Excerpt,
		Content:         n.Content,
		FeaturedImage:   n.FeaturedImage,
		Category:        n.Category,
		Tags:            n.Tags,
		Language:        string(n.Language),
		Author:          n.Author,
		Status:          string(n.Status),
		IsFeatured:      n.IsFeatured,
		Views:           n.Views,
		PublishedAt:     n.PublishedAt,
		RejectionReason: n.RejectionReason,
		ReviewedBy:      n.ReviewedBy,
		ReviewedAt:      n.ReviewedAt,
		SEOTitle:        n.SEOTitle,
		SEODescription:  n.SEODescription,
		CreatedAt:       n.CreatedAt.UTC(),
		UpdatedAt:       n.UpdatedAt.UTC(),
	}
}

func (m mongoNews) toDomain() *domain.News {
	return &domain.News{
		ID:              m.ID.Hex(),
		Title:           m.Title,
		Slug:            m.Slug,
		Excerpt:         m.Excerpt,
		Content:         m.Content,
		FeaturedImage:   m.FeaturedImage,
		Category:        m.Category,
		Tags:            m.Tags,
		Language:        domain.NewsLanguage(m.Language),
		Author:          m.Author,
		Status:          domain.NewsStatus(m.Status),
		IsFeatured:      m.IsFeatured,
		Views:           m.Views,
		PublishedAt:     m.PublishedAt,
		RejectionReason: m.RejectionReason,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      m.ReviewedAt,
		SEOTitle:        m.SEOTitle,
		SEODescription:  m.SEODescription,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *NewsRepository) Create(ctx context.Context, n *domain.News) (*domain.News, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoNews(n))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateSlug
		}
		return nil, fmt.Errorf("insert article: %w", err)
	}

	out := *n
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *NewsRepository) FindByID(ctx context.Context, id string) (*domain.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNewsNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *NewsRepository) FindBySlug(ctx context.Context, slug string) (*domain.News, error) {
	return r.findOne(ctx, bson.M{"slug": slug})
}

func (r *NewsRepository) findOne(ctx context.Context, filter bson.M) (*domain.News, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoNews
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNewsNotFound
		}
		return nil, fmt.Errorf("find article: %w", err)
	}
	return m.toDomain(), nil
}

func (r *NewsRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"slug": slug}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count slug: %w", err)
	}
	return n > 0, nil
}

func (r *NewsRepository) Update(ctx context.Context, n *domain.News) error {
	oid, err := primitive.ObjectIDFromHex(n.ID)
	if err != nil {
		return domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoNews(n))
	if err != nil {
		return fmt.Errorf("update article: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) List(ctx context.Context, f ports.ListNewsFilter) ([]*domain.News, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Language != "" {
		filter["language"] = string(f.Language)
	}
	if f.Author != "" {
		filter["author"] = f.Author
	}
	if f.Tag != "" {
		filter["tags"] = f.Tag
	}
	if f.Featured != nil {
		filter["is_featured"] = *f.Featured
	}
	if f.Search != "" {
		filter["$text"] = bson.M{"$search": f.Search}
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count articles: %w", err)
	}

	page := f.Page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "published_at", Value: -1}, {Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Number - 1) * page.Limit)).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list articles: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.News
	for cur.Next(ctx) {
		var m mongoNews
		if err := cur.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("decode article: %w", err)
		}
		items = append(items, m.toDomain())
	}
	return items, total, cur.Err()
}

// UpdateStatusIfPending applies a review decision guarded on status=pending.
func (r *NewsRepository) UpdateStatusIfPending(ctx context.Context, id string, review ports.NewsReviewUpdate) (*domain.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.NewsPending)}
	update := bson.M{"$set": bson.M{
		"status":           string(review.Status),
		"reviewed_by":      review.ReviewerID,
		"rejection_reason": review.Reason,
		"reviewed_at":      review.ReviewedAt.UTC(),
		"updated_at":       review.ReviewedAt.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoNews
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
			if cerr != nil {
				return nil, fmt.Errorf("review article: %w", cerr)
			}
			if n == 0 {
				return nil, domain.ErrNewsNotFound
			}
			return nil, domain.ErrReviewConflict
		}
		return nil, fmt.Errorf("review article: %w", err)
	}
	return m.toDomain(), nil
}

// Publish moves the article into published, guarded on the expected current
// status. published_at is written only when the document has none yet, so the
// first publish time survives any later republish.
func (r *NewsRepository) Publish(ctx context.Context, id string, expectFrom domain.NewsStatus, at time.Time) (*domain.News, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	// Two guarded updates: the second only fires for documents that have never
	// been published before.
	filter := bson.M{"_id": oid, "status": string(expectFrom)}
	update := bson.M{"$set": bson.M{
		"status":     string(domain.NewsPublished),
		"updated_at": at.UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m mongoNews
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			n, cerr := r.col.CountDocuments(ctx, bson.M{"_id": oid}, options.Count().SetLimit(1))
			if cerr != nil {
				return nil, fmt.Errorf("publish article: %w", cerr)
			}
			if n == 0 {
				return nil, domain.ErrNewsNotFound
			}
			return nil, domain.ErrReviewConflict
		}
		return nil, fmt.Errorf("publish article: %w", err)
	}

	if m.PublishedAt == nil {
		first := at.UTC()
		_, err := r.col.UpdateOne(ctx,
			bson.M{"_id": oid, "published_at": bson.M{"$exists": false}},
			bson.M{"$set": bson.M{"published_at": first}},
		)
		if err != nil {
			return nil, fmt.Errorf("publish article: %w", err)
		}
		m.PublishedAt = &first
	}
	return m.toDomain(), nil
}

func (r *NewsRepository) IncrementViews(ctx context.Context, id string, delta int64) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNewsNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"views": delta}})
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNewsNotFound
	}
	return nil
}

func (r *NewsRepository) CountByStatus(ctx context.Context) (map[domain.NewsStatus]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("count articles by status: %w", err)
	}
	defer cur.Close(ctx)

	out := make(map[domain.NewsStatus]int64)
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode status count: %w", err)
		}
		out[domain.NewsStatus(row.Status)] = row.Count
	}
	return out, cur.Err()
}

// EnsureIndexes creates necessary indexes on the news collection.
func (r *NewsRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "published_at", Value: -1}}},
		{Keys: bson.D{{Key: "author", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
		{Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "excerpt", Value: "text"},
			{Key: "content", Value: "text"},
		}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
