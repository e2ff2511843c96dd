// Package rickmorty binds the multi-select control to the Rick and Morty
// character API: an HTTP client, a SQLite page cache, and a pager that turns
// a search term into successive page requests.
package rickmorty

import (
	"context"
	"strconv"
)

// Place is a named location reference.
type Place struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Character is one result of the character endpoint.
type Character struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Status   string   `json:"status"`
	Species  string   `json:"species"`
	Type     string   `json:"type"`
	Gender   string   `json:"gender"`
	Origin   Place    `json:"origin"`
	Location Place    `json:"location"`
	Image    string   `json:"image"`
	Episode  []string `json:"episode"`
	URL      string   `json:"url"`
	Created  string   `json:"created"`
}

// Key implements selector.Option.
func (c Character) Key() int { return c.ID }

// Label implements selector.Option.
func (c Character) Label() string { return c.Name }

// EpisodeCount returns the number of episodes the character appears in.
func (c Character) EpisodeCount() int { return len(c.Episode) }

// String renders the character for logs.
func (c Character) String() string {
	return "#" + strconv.Itoa(c.ID) + " " + c.Name
}

// PageInfo is the pagination block of a response.
type PageInfo struct {
	Count int    `json:"count"`
	Pages int    `json:"pages"`
	Next  string `json:"next"`
	Prev  string `json:"prev"`
}

// Page is one page of characters. A page with no results means there is
// nothing more to load for that search.
type Page struct {
	Info    PageInfo    `json:"info"`
	Results []Character `json:"results"`
}

// Empty reports whether the page carries no characters.
func (p Page) Empty() bool {
	return len(p.Results) == 0
}

// Source fetches one page of characters whose name matches name. Pages are
// numbered from 1.
type Source interface {
	FetchPage(ctx context.Context, name string, page int) (Page, error)
}
