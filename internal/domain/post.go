package domain

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Post is the parent of comments. Only the fields this service touches are mapped.
type Post struct {
	BaseModel
	UserID uuid.UUID `gorm:"type:uuid;index:idx_posts_user_id" json:"user"`
	Text   string    `gorm:"type:text" json:"text"`
	// CommentIDs holds comment ids newest first
	CommentIDs datatypes.JSON `gorm:"type:jsonb" json:"comments"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}

// Comments decodes the comment id list. A missing or empty column yields an empty slice.
func (p *Post) Comments() ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	if len(p.CommentIDs) == 0 || string(p.CommentIDs) == "null" {
		return ids, nil
	}
	if err := json.Unmarshal(p.CommentIDs, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

// SetComments replaces the comment id list
func (p *Post) SetComments(ids []uuid.UUID) error {
	if ids == nil {
		ids = []uuid.UUID{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	p.CommentIDs = raw
	return nil
}

// PrependComment puts id at the head of the comment id list
func (p *Post) PrependComment(id uuid.UUID) error {
	ids, err := p.Comments()
	if err != nil {
		return err
	}
	return p.SetComments(append([]uuid.UUID{id}, ids...))
}

// HasComment reports whether id is linked from the post
func (p *Post) HasComment(id uuid.UUID) bool {
	ids, err := p.Comments()
	if err != nil {
		return false
	}
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
