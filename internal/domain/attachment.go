package domain

// OwnerType identifies the kind of entity an attachment belongs to
type OwnerType string

const (
	OwnerTypePost OwnerType = "Post"
)

// Owner is the polymorphic owner of an attachment: a kind tag plus an id.
// Only posts own attachments today; new owner kinds extend the constant set.
type Owner struct {
	Type OwnerType
	ID   uint
}

// PostOwner returns the owner variant for a post id
func PostOwner(id uint) Owner {
	return Owner{Type: OwnerTypePost, ID: id}
}

// Attachment represents a stored file owned by a post
// This is a polymorphic relationship - FileableID is interpreted through
// FileableType, so no foreign key constraint is declared on it
type Attachment struct {
	BaseModel
	FileableID   uint      `gorm:"not null;index:idx_attachments_fileable,priority:2" json:"fileable_id"`
	FileableType OwnerType `gorm:"type:varchar(50);not null;index:idx_attachments_fileable,priority:1" json:"fileable_type"`
	FilePath     string    `gorm:"type:text;not null" json:"file_path"` // storage key, not a full URL
}

// TableName specifies the table name for Attachment
func (Attachment) TableName() string {
	return "attachments"
}

// Owner returns the owner variant recorded on the attachment
func (a *Attachment) Owner() Owner {
	return Owner{Type: a.FileableType, ID: a.FileableID}
}
