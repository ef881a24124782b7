package models

// CustomList is a user-curated, optionally public collection of content.
type CustomList struct {
	BaseModel

	UserID      string `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsPublic    bool   `gorm:"default:false" json:"is_public"`

	Items []CustomListItem `gorm:"foreignKey:ListID" json:"items,omitempty"`
}

// CustomListItem is a single entry in a custom list.
type CustomListItem struct {
	BaseModel

	ListID    string `gorm:"type:uuid;not null;index:idx_list_item_list_content,unique" json:"list_id"`
	ContentID string `gorm:"type:uuid;not null;index:idx_list_item_list_content,unique" json:"content_id"`
	Note      string `json:"note"`

	Content *Content `gorm:"foreignKey:ContentID" json:"content,omitempty"`
}
