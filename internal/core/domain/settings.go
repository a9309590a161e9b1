package domain

import "time"

// Settings is the singleton site configuration document edited through the
// admin back-office. Publicly readable.
type Settings struct {
	ID           string            `json:"-" bson:"_id,omitempty"`
	SiteTitle    string            `json:"site_title" bson:"site_title"`
	Tagline      string            `json:"tagline,omitempty" bson:"tagline,omitempty"`
	ContactEmail string            `json:"contact_email" bson:"contact_email"`
	ContactPhone string            `json:"contact_phone,omitempty" bson:"contact_phone,omitempty"`
	Address      string            `json:"address,omitempty" bson:"address,omitempty"`
	SocialLinks  map[string]string `json:"social_links,omitempty" bson:"social_links,omitempty"`
	JobsPerPage  int               `json:"jobs_per_page" bson:"jobs_per_page"`
	NewsPerPage  int               `json:"news_per_page" bson:"news_per_page"`
	Maintenance  bool              `json:"maintenance" bson:"maintenance"`
	UpdatedBy    string            `json:"updated_by,omitempty" bson:"updated_by,omitempty"`
	UpdatedAt    time.Time         `json:"updated_at" bson:"updated_at"`
}

// DefaultSettings returns the document used before an admin has saved one.
func DefaultSettings() *Settings {
	return &Settings{
		SiteTitle:   "Apna Journey",
		Tagline:     "Jobs and news for Gaya, Bihar",
		JobsPerPage: 20,
		NewsPerPage: 20,
	}
}
