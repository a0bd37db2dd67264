package models

import "time"

// Story is the second authored resource kind: like a post, without
// comments/attachments, plus a published flag.
type Story struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Description string    `json:"description"`
	AuthorID    string    `json:"-"`
	Author      *UserRef  `json:"author"`
	CoverImage  string    `json:"coverImage,omitempty"`
	Tags        []string  `json:"tags"`
	Likes       []string  `json:"likes"`
	ReadTime    int       `json:"readTime"`
	Views       int64     `json:"views"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
