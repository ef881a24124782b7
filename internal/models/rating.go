package models

// Rating is a single 1-10 score a user gives a piece of content.
type Rating struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index:idx_rating_user_content,unique" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index:idx_rating_user_content,unique" json:"content_id"`

	Score int `gorm:"not null;check:score >= 1 AND score <= 10" json:"rating"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}

// Review is free-text commentary on content, private by default visibility flag.
type Review struct {
	BaseModel

	UserID    string `gorm:"type:uuid;not null;index" json:"user_id"`
	ContentID string `gorm:"type:uuid;not null;index" json:"content_id"`

	Description string `gorm:"not null" json:"description"`
	IsPrivate   bool   `gorm:"default:false" json:"is_private"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}
