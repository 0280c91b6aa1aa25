package entity

// Tag represents a CRM tag
type Tag struct {
	Id        string `json:"id" gorm:"column:id;primaryKey"`
	Name      string `json:"name" gorm:"column:name;uniqueIndex"`
	Color     string `json:"color" gorm:"column:color"`
	CreatedAt int64  `json:"created_at" gorm:"column:created_at"`
}

// TableName returns the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// ConversationTag associates a tag with a conversation
type ConversationTag struct {
	Id             int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	ConversationId int64  `json:"conversation_id" gorm:"column:conversation_id;uniqueIndex:idx_conv_tag"`
	TagId          string `json:"tag_id" gorm:"column:tag_id;uniqueIndex:idx_conv_tag"`
	CreatedAt      int64  `json:"created_at" gorm:"column:created_at"`
}

// TableName returns the table name for ConversationTag
func (ConversationTag) TableName() string {
	return "conversation_tags"
}

// TagInfo represents tag info for API responses
type TagInfo struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ToTagInfo converts Tag to TagInfo
func (t *Tag) ToTagInfo() *TagInfo {
	return &TagInfo{Id: t.Id, Name: t.Name, Color: t.Color}
}
