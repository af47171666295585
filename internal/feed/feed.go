package feed

import (
	"microblog/internal/post"
)

// Page is one slice of an ordered feed. Page numbers are 1-based; a
// number past the end yields an empty page rather than an error.
type Page struct {
	Items    []post.Post `json:"items"`
	Number   int         `json:"number"`
	Size     int         `json:"size"`
	Total    int64       `json:"total"`
	NumPages int         `json:"num_pages"`
}

func (p *Page) HasPrev() bool { return p.Number > 1 }
func (p *Page) HasNext() bool { return p.Number < p.NumPages }
func (p *Page) PrevNum() int  { return p.Number - 1 }
func (p *Page) NextNum() int  { return p.Number + 1 }

func newPage(items []post.Post, number, size int, total int64) *Page {
	numPages := int((total + int64(size) - 1) / int64(size))
	if numPages < 1 {
		numPages = 1
	}
	return &Page{
		Items:    items,
		Number:   number,
		Size:     size,
		Total:    total,
		NumPages: numPages,
	}
}

// clampPage normalizes a requested page number: absent or invalid
// values fall back to 1.
func clampPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// AuthorStats is the profile sidebar data: the author's activity plus
// whether the current viewer follows them.
type AuthorStats struct {
	Posts         int64
	Followers     int64
	Following     int64
	ViewerFollows bool
}
