package domain

import "time"

// NewsStatus is the lifecycle state of an article.
//
// approved means "cleared by a reviewer, not yet live"; published is the only
// state visible to the public. draft articles belong to their author alone.
type NewsStatus string

const (
	NewsDraft     NewsStatus = "draft"
	NewsPending   NewsStatus = "pending"
	NewsApproved  NewsStatus = "approved"
	NewsRejected  NewsStatus = "rejected"
	NewsPublished NewsStatus = "published"
)

// newsTransitions defines the allowed lifecycle transitions. draft→published
// covers direct publishing by admin authors; everything user-submitted goes
// through pending review.
var newsTransitions = map[NewsStatus][]NewsStatus{
	NewsDraft:    {NewsPending, NewsPublished},
	NewsPending:  {NewsApproved, NewsRejected},
	NewsApproved: {NewsPublished},
}

// CanTransitionTo reports whether moving from the current status to next is allowed.
func (s NewsStatus) CanTransitionTo(next NewsStatus) bool {
	for _, allowed := range newsTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// NewsLanguage is the article language.
type NewsLanguage string

const (
	LangEnglish NewsLanguage = "english"
	LangHindi   NewsLanguage = "hindi"
)

// Closed enum for news categories.
const (
	NewsCategoryLocal      = "local"
	NewsCategoryJobs       = "jobs"
	NewsCategoryEducation  = "education"
	NewsCategoryBusiness   = "business"
	NewsCategoryCulture    = "culture"
	NewsCategorySports     = "sports"
	NewsCategoryGovernment = "government"
)

// News is a news article. PublishedAt is set exactly once, on the first
// transition into published, and never overwritten afterwards.
type News struct {
	ID              string       `json:"id" bson:"_id,omitempty"`
	Title           string       `json:"title" bson:"title"`
	Slug            string       `json:"slug" bson:"slug"`
	Excerpt         string       `json:"excerpt" bson:"excerpt"`
	Content         string       `json:"content" bson:"content"`
	FeaturedImage   string       `json:"featured_image,omitempty" bson:"featured_image,omitempty"`
	Category        string       `json:"category" bson:"category"`
	Tags            []string     `json:"tags,omitempty" bson:"tags,omitempty"`
	Language        NewsLanguage `json:"language" bson:"language"`
	Author          string       `json:"author" bson:"author"`
	Status          NewsStatus   `json:"status" bson:"status"`
	IsFeatured      bool         `json:"is_featured" bson:"is_featured"`
	Views           int64        `json:"views" bson:"views"`
	PublishedAt     *time.Time   `json:"published_at,omitempty" bson:"published_at,omitempty"`
	RejectionReason string       `json:"rejection_reason,omitempty" bson:"rejection_reason,omitempty"`
	ReviewedBy      string       `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time   `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	SEOTitle        string       `json:"seo_title,omitempty" bson:"seo_title,omitempty"`
	SEODescription  string       `json:"seo_description,omitempty" bson:"seo_description,omitempty"`
	CreatedAt       time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at" bson:"updated_at"`
}
