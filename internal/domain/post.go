package domain

// Title and body bounds enforced at the workflow boundary, not by storage.
const (
	TitleMinLength = 3
	TitleMaxLength = 255
	BodyMinLength  = 10
)

// Post represents a content record with a title and body text
type Post struct {
	BaseModel
	Title string `gorm:"type:varchar(255);not null" json:"title"`
	Body  string `gorm:"type:text;not null" json:"body"`
	// Attachments are a polymorphic relation, loaded by the repository
	Attachments []Attachment `gorm:"-" json:"attachments,omitempty"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "posts"
}
