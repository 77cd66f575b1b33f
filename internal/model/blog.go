package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	// StatusDraft marks a post that is not publicly published yet.
	StatusDraft BlogStatus = "draft"
	// StatusPublished marks a post visible to readers.
	StatusPublished BlogStatus = "published"
)

// Valid reports whether s is one of the two allowed states.
func (s BlogStatus) Valid() bool {
	return s == StatusDraft || s == StatusPublished
}

// Blog represents a single post owned by exactly one author. Every read and
// write is scoped to the author; AuthorID never changes after creation.
type Blog struct {
	ID        string     `json:"id" gorm:"type:char(36);primaryKey"`
	Title     string     `json:"title" gorm:"size:255;not null;index"`
	Content   string     `json:"content" gorm:"type:longtext;not null"`
	Tags      []string   `json:"tags" gorm:"serializer:json;type:json"`
	Status    BlogStatus `json:"status" gorm:"size:20;not null;default:'draft';index"`
	AuthorID  string     `json:"authorId" gorm:"type:char(36);not null;index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"index"`
}

// BeforeCreate assigns an ID before inserting the record.
func (b *Blog) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Tags == nil {
		b.Tags = []string{}
	}
	return nil
}
