package models

import "time"

// Post is an authored resource with mutable like and comment collections.
// Likes is a set of user IDs; Comments are newest-first.
type Post struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Description string       `json:"description"`
	AuthorID    string       `json:"-"`
	Author      *UserRef     `json:"author"`
	CoverImage  string       `json:"coverImage,omitempty"`
	Tags        []string     `json:"tags"`
	Files       []Attachment `json:"files"`
	Likes       []string     `json:"likes"`
	Comments    []Comment    `json:"comments"`
	ReadTime    int          `json:"readTime"`
	Views       int64        `json:"views"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// Comment is append-only from the API's perspective.
type Comment struct {
	ID        string    `json:"_id"`
	PostID    string    `json:"-"`
	User      *UserRef  `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Attachment is metadata for a file whose bytes live in the blob store.
type Attachment struct {
	ID         string    `json:"_id"`
	PostID     string    `json:"-"`
	Filename   string    `json:"filename"`
	StorageKey string    `json:"url"`
	FileType   string    `json:"fileType"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploadedAt"`
}
