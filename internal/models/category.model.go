package models

// Category is a global, shared label matching the external catalog's
// boardgamecategory vocabulary. Rows are seeded by migration; catalog lookups
// resolve names against this table and fail on a miss.
type Category struct {
	BaseModel
	Name string `gorm:"type:text;uniqueIndex;not null" json:"name"`
}
