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

const collectionInquiries = "inquiries"

type InquiryRepository struct {
	col *mongo.Collection
}

func NewInquiryRepository(db *mongo.Database) *InquiryRepository {
	return &InquiryRepository{col: db.Collection(collectionInquiries)}
}

type mongoInquiry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Name       string             `bson:"name"`
	Email      string             `bson:"email"`
	Phone      string             `bson:"phone,omitempty"`
	Subject    string             `bson:"subject"`
	Message    string             `bson:"message"`
	Type       string             `bson:"type"`
	Status     string             `bson:"status"`
	Priority   string             `bson:"priority"`
	AdminNotes string             `bson:"admin_notes,omitempty"`
	CreatedAt  time.Time          `bson:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at"`
}

func toMongoInquiry(inq *domain.Inquiry) mongoInquiry {
	return mongoInquiry{
		Name:       inq.Name,
		Email:      inq.Email,
		Phone:      inq.Phone,
		Subject:    inq.Subject,
		Message:    inq.Message,
		Type:       string(inq.Type),
		Status:     string(inq.Status),
		Priority:   string(inq.Priority),
		AdminNotes: inq.AdminNotes,
		CreatedAt:  inq.CreatedAt.UTC(),
		UpdatedAt:  inq.UpdatedAt.UTC(),
	}
}

func (m mongoInquiry) toDomain() *domain.Inquiry {
	return &domain.Inquiry{
		ID:         m.ID.Hex(),
		Name:       m.Name,
		Email:      m.Email,
		Phone:      m.Phone,
		Subject:    m.Subject,
		Message:    m.Message,
		Type:       domain.InquiryType(m.Type),
		Status:     domain.InquiryStatus(m.Status),
		Priority:   domain.InquiryPriority(m.Priority),
		AdminNotes: m.AdminNotes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (r *InquiryRepository) Create(ctx context.Context, inq *domain.Inquiry) (*domain.Inquiry, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, toMongoInquiry(inq))
	if err != nil {
		return nil, fmt.Errorf("insert inquiry: %w", err)
	}

	out := *inq
	out.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &out, nil
}

func (r *InquiryRepository) FindByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrInquiryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var m mongoInquiry
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrInquiryNotFound
		}
		return nil, fmt.Errorf("find inquiry: %w", err)
	}
	return m.toDomain(), nil
}

func (r *InquiryRepository) List(ctx context.Context, f ports.ListInquiriesFilter) ([]*domain.Inquiry, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = string(f.Status)
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Priority != "" {
		filter["priority"] = string(f.Priority)
	}

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count inquiries: %w", err)
	}

	page := f.Page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Number - 1) * page.Limit)).
		SetLimit(int64(page.Limit))

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	defer cur.Close(ctx)

	var items []*domain.Inquiry
	for cur.Next(ctx) {
		var m mongoInquiry
		if err := cur.Decode(&m); err != nil {
			return nil, 0, fmt.Errorf("decode inquiry: %w", err)
		}
		items = append(items, m.toDomain())
	}
	return items, total, cur.Err()
}

func (r *InquiryRepository) Update(ctx context.Context, inq *domain.Inquiry) error {
	oid, err := primitive.ObjectIDFromHex(inq.ID)
	if err != nil {
		return domain.ErrInquiryNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, toMongoInquiry(inq))
	if err != nil {
		return fmt.Errorf("update inquiry: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrInquiryNotFound
	}
	return nil
}

func (r *InquiryRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.EstimatedDocumentCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("count inquiries: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates necessary indexes on the inquiries collection.
func (r *InquiryRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "priority", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
