package model

import "time"

type Post struct {
	PostID    string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content"`
	AuthorID  string    `bson:"author_id" json:"authorId"`
	Author    string    `bson:"author" json:"author"`
	Comments  int       `bson:"comments" json:"comments"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
