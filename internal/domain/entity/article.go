package entity

import "time"

// Comment ids are scoped to their parent article: the next id is always
// len(comments)+1, so ids are strictly increasing starting at 1 and never
// reused (comments are append-only).
type Comment struct {
	ID        int       `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"date"`
}

// Article is a post with an append-only comment list. Author is the
// denormalized username string, not a foreign key.
type Article struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image,omitempty"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"date"`
}

// AppendComment adds a comment authored by author and returns it. The new
// id is assigned from the current comment count.
func (a *Article) AppendComment(author, text string, now time.Time) Comment {
	c := Comment{
		ID:        len(a.Comments) + 1,
		Text:      text,
		Author:    author,
		CreatedAt: now,
	}
	a.Comments = append(a.Comments, c)
	return c
}

// FindComment returns the comment with the given id, or nil.
func (a *Article) FindComment(id int) *Comment {
	for i := range a.Comments {
		if a.Comments[i].ID == id {
			return &a.Comments[i]
		}
	}
	return nil
}
