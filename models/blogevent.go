package models

import "time"

const (
	EventBlogCreated = "blog-created"
	EventBlogUpdated = "blog-updated"
	EventBlogDeleted = "blog-deleted"
)

// BlogEvent is published after a post has been written or removed.
type BlogEvent struct {
	Event    string    `json:"event"`
	BlogID   string    `json:"blogId"`
	Category string    `json:"category,omitempty"`
	At       time.Time `json:"at"`
}
