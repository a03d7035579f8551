package model

import "time"

// StatePending is the state_requests id every new publication starts in.
const StatePending int64 = 1

// Publication is a user-authored record describing a plantation.
// Score is vote-derived; Visibility and StateID are driven by moderation.
type Publication struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	PlantationID    int64     `json:"plantation_id"`
	AuthorID        int64     `json:"author_id"`
	Score           int       `json:"score"`
	Visibility      bool      `json:"visibility"`
	StateID         int64     `json:"state_id"`
	PublicationDate time.Time `json:"publication_date"`
	ImagePath       string    `json:"image_path,omitempty"`
}

// UpdateInfo overwrites the author-editable fields from a newer version of
// the same publication.
func (p *Publication) UpdateInfo(newer Publication) {
	p.Title = newer.Title
	p.Content = newer.Content
	p.PlantationID = newer.PlantationID
	p.Visibility = newer.Visibility
}
