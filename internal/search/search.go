// Package search finds published documents whose title, subtitle, or
// content contains a query string, case-insensitively. Results carry a
// snippet of the content around the first match.
package search

import "strings"

// MaxResults caps how many hits a search returns.
const MaxResults = 20

// Result is a single search hit returned to the caller.
type Result struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Subtitle       string           `json:"subtitle"`
	Slug           string           `json:"slug"`
	Category       *CategorySummary `json:"category"`
	ContentSnippet string           `json:"contentSnippet"`
}

// CategorySummary is the category info attached to a search hit.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Query   string   `json:"query"`
}

// DocumentRecord is the data indexed per published document. UpdatedAt
// is unix seconds so hits can be ordered newest-first regardless of
// which backend produced them.
type DocumentRecord struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Slug         string `json:"slug"`
	Content      string `json:"content"`
	CategoryID   string `json:"categoryId"`
	CategoryName string `json:"categoryName"`
	CategorySlug string `json:"categorySlug"`
	UpdatedAt    int64  `json:"updatedAt"`
}

// Matches reports whether the record's title, subtitle, or content
// contains the query, ignoring case.
func (r DocumentRecord) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Title), q) ||
		strings.Contains(strings.ToLower(r.Subtitle), q) ||
		strings.Contains(strings.ToLower(r.Content), q)
}

func (r DocumentRecord) toResult(query string) Result {
	res := Result{
		ID:             r.ID,
		Title:          r.Title,
		Subtitle:       r.Subtitle,
		Slug:           r.Slug,
		ContentSnippet: Snippet(r.Content, query),
	}
	if r.CategoryID != "" {
		res.Category = &CategorySummary{ID: r.CategoryID, Name: r.CategoryName, Slug: r.CategorySlug}
	}
	return res
}
