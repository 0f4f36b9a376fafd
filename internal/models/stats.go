package models

import "time"

// Contribution is a short summary of a recently submitted journey.
type Contribution struct {
	AuthorName string    `json:"author_name"`
	Title      string    `json:"journey_title"`
	CreatedAt  time.Time `json:"created_at"`
}

func (c Contribution) DisplayAuthor() string {
	if c.AuthorName == "" {
		return AnonymousAuthor
	}
	return c.AuthorName
}

func (c Contribution) DisplayDate() string {
	return c.CreatedAt.In(DateLocation).Format("2006/1/2")
}

// Stats feeds the about page.
type Stats struct {
	TotalJourneys       int64          `json:"total_journeys"`
	TotalContributors   int64          `json:"total_contributors"`
	RecentContributions []Contribution `json:"recent_contributions"`
}
