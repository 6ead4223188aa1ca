package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty values accepted for stored resources. Empty means unknown.
var Difficulties = []string{"Beginner", "Intermediate", "Advanced", "All Levels", ""}

// Resource is a learning-content record persisted in the resources collection.
type Resource struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	URL          string             `bson:"url" json:"url"`
	ImageURL     string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	Category     string             `bson:"category,omitempty" json:"category,omitempty"`
	SubCategory  string             `bson:"subCategory,omitempty" json:"subCategory,omitempty"`
	Tags         []string           `bson:"tags" json:"tags"`
	Provider     string             `bson:"provider,omitempty" json:"provider,omitempty"`
	Difficulty   string             `bson:"difficulty" json:"difficulty"`
	ResourceType string             `bson:"resourceType,omitempty" json:"resourceType,omitempty"`
	Language     string             `bson:"language,omitempty" json:"language,omitempty"`
	Instructors  []string           `bson:"instructors" json:"instructors"`
	Rating       *float64           `bson:"rating,omitempty" json:"rating,omitempty"`
	Reviews      *int               `bson:"reviews,omitempty" json:"reviews,omitempty"`
	Duration     string             `bson:"duration,omitempty" json:"duration,omitempty"`
	Subtitles    string             `bson:"subtitles,omitempty" json:"subtitles,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// ResourceFilter narrows a stored-resource listing. Empty fields are ignored.
type ResourceFilter struct {
	Category   string
	Provider   string
	Difficulty string
	Tag        string
	Query      string
}
