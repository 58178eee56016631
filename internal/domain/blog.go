package domain

import "time"

// BlogPost represents a published article on the storefront blog.
type BlogPost struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Excerpt     string    `json:"excerpt,omitempty"`
	Content     string    `json:"content"`
	Author      string    `json:"author"`
	PublishedAt time.Time `json:"published_at"`
}

// EntityID returns the post's unique identifier.
func (b BlogPost) EntityID() string { return b.ID }
