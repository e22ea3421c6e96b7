package domain

// Meme represents a meme record.
// ImageURL holds the object key returned by the media service; it is nullable
// at the schema level but the create workflow always populates it.
type Meme struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:text;not null;index:idx_memes_title" json:"title"`
	Description string `gorm:"type:text;not null" json:"description"`
	ImageURL    string `gorm:"type:text" json:"image_url"`
}

// TableName returns the database table name for Meme.
func (Meme) TableName() string {
	return "memes"
}
