package model

import (
	"time"
)

// Article is a study resource published by an admin. It carries either
// inline content or an external link, never both.
type Article struct {
	ID                 string    `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	TopicsCovered      []string  `json:"topicsCovered"`
	AllowedDepartments []string  `json:"allowedDepartments"`
	Content            string    `json:"content,omitempty"`
	Link               string    `json:"link,omitempty"`
	Uploader           string    `json:"uploader"`
	CreatedAt          time.Time `json:"createdAt"`
}
