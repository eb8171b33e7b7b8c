package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment represents a comment on a post
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_post_id" json:"post"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index:idx_comments_user_id" json:"user"`
	CreatedAt time.Time `gorm:"column:date;not null;index:idx_comments_date" json:"date"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// BeforeCreate assigns an ID when the store does not
func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
