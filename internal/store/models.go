package store

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSummary is the author shape embedded in document and comment payloads.
type UserSummary struct {
	ID    string
	Name  string
	Email string
	Image string
}

type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Published documents under the category, loaded on get/list.
	Documents []DocumentRef
}

// DocumentRef is the slim document shape used for category listings
// and prev/next navigation.
type DocumentRef struct {
	ID       string
	Title    string
	Slug     string
	Subtitle string
}

type Tag struct {
	ID   string
	Name string
}

type Document struct {
	ID         string
	Title      string
	Slug       string
	Subtitle   string
	Content    string
	Published  bool
	Version    int
	AuthorID   string
	CategoryID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Author   UserSummary
	Category *Category
	Tags     []Tag
	Versions []DocumentVersion
	Comments []Comment
}

// DocumentVersion is an immutable snapshot. Rows are append-only per
// document; version_number starts at 1 and is never reused.
type DocumentVersion struct {
	ID            string
	DocumentID    string
	VersionNumber int
	Title         string
	Subtitle      string
	Content       string
	CreatedAt     time.Time
}

type Comment struct {
	ID         string
	Content    string
	DocumentID string
	AuthorID   string
	Author     UserSummary
	CreatedAt  time.Time
}

// DocumentFilter narrows ListDocuments. A nil Published means both
// published and drafts; empty CategoryID means all categories; Limit
// zero means no cap.
type DocumentFilter struct {
	Published  *bool
	CategoryID string
	Limit      int
}
