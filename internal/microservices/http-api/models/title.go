package models

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:200;not null;index"`
	Description *string `json:"description" gorm:"size:300"`
	Year        int     `json:"year" gorm:"not null;index"`
	CategoryID  *int64  `json:"-" gorm:"index"`

	// Rating is the mean review score, filled only by read queries; nil when unreviewed.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// associations
	Category *Category `json:"category" gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	Genres   []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
}

func (Title) TableName() string {
	return "titles"
}
