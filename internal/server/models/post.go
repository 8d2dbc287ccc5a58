package models

import "time"

// Post is a blog post. New posts start unpublished.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Published bool
	CreatedAt time.Time
	AuthorID  int64
}
