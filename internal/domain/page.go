package domain

// Page represents a static content page (legal pages and the like).
type Page struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Slug    string `json:"slug"`
	Content string `json:"content"`
}

// EntityID returns the page's unique identifier.
func (p Page) EntityID() string { return p.ID }
