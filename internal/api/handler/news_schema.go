package handler

import "time"

// --- Request types ---

type createNewsRequest struct {
	Title          string   `json:"title"           validate:"required,min=3,max=200"`
	Excerpt        string   `json:"excerpt"         validate:"required,max=300"`
	Content        string   `json:"content"         validate:"required,min=50"`
	FeaturedImage  string   `json:"featured_image"`
	Category       string   `json:"category"        validate:"required,oneof=local jobs education business culture sports government"`
	Tags           []string `json:"tags"`
	Language       string   `json:"language"        validate:"required,oneof=english hindi"`
	SEOTitle       string   `json:"seo_title"`
	SEODescription string   `json:"seo_description"`
	Draft          bool     `json:"draft"`
	Publish        bool     `json:"publish"`
}

// updateNewsRequest carries the same field bounds as create; absent fields are
// left untouched.
type updateNewsRequest struct {
	Title          *string  `json:"title,omitempty"   validate:"omitempty,min=3,max=200"`
	Excerpt        *string  `json:"excerpt,omitempty" validate:"omitempty,max=300"`
	Content        *string  `json:"content,omitempty" validate:"omitempty,min=50"`
	FeaturedImage  *string  `json:"featured_image,omitempty"`
	Tags           []string `json:"tags,omitempty"`
	SEOTitle       *string  `json:"seo_title,omitempty"`
	SEODescription *string  `json:"seo_description,omitempty"`
}

// featureNewsRequest toggles the homepage-featured flag on an article.
type featureNewsRequest struct {
	Featured *bool `json:"featured" validate:"required"`
}

// --- Response types ---

type newsResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Excerpt         string     `json:"excerpt"`
	Content         string     `json:"content"`
	FeaturedImage   string     `json:"featured_image,omitempty"`
	Category        string     `json:"category"`
	Tags            []string   `json:"tags,omitempty"`
	Language        string     `json:"language"`
	Author          string     `json:"author"`
	Status          string     `json:"status"`
	IsFeatured      bool       `json:"is_featured"`
	Views           int64      `json:"views"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      string     `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	SEOTitle        string     `json:"seo_title,omitempty"`
	SEODescription  string     `json:"seo_description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// newsSummaryResponse omits the article body for list payloads.
type newsSummaryResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       string     `json:"excerpt"`
	FeaturedImage string     `json:"featured_image,omitempty"`
	Category      string     `json:"category"`
	Tags          []string   `json:"tags,omitempty"`
	Language      string     `json:"language"`
	Status        string     `json:"status"`
	IsFeatured    bool       `json:"is_featured"`
	Views         int64      `json:"views"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type listNewsResponse struct {
	Data       []newsSummaryResponse `json:"data"`
	Pagination paginationResponse    `json:"pagination"`
}
