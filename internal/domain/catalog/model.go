package catalog

import (
	"time"

	"github.com/goccy/go-json"
)

// ProjectStatus is the lifecycle state of a portfolio project.
type ProjectStatus string

const (
	StatusCompleted ProjectStatus = "completed"
	StatusOngoing   ProjectStatus = "ongoing"
)

// Project is a portfolio entry.
type Project struct {
	ID        int64
	Slug      string
	Title     string
	ShortDesc string
	Details   string
	Tech      []string
	Media     json.RawMessage
	GithubURL *string
	DemoURL   *string
	Rank      *float64
	Status    ProjectStatus
	Visible   bool
	CreatedAt time.Time
}

// ProjectView is the public JSON shape of a project.
type ProjectView struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	ShortDesc string          `json:"shortDesc"`
	Details   string          `json:"details"`
	Tech      []string        `json:"tech"`
	Media     json.RawMessage `json:"media"`
	Github    *string         `json:"github"`
	Demo      *string         `json:"demo"`
}

// View converts a project to its public shape.
func (p Project) View() ProjectView {
	tech := p.Tech
	if tech == nil {
		tech = []string{}
	}
	media := p.Media
	if len(media) == 0 {
		media = emptyMedia()
	}
	return ProjectView{
		Slug:      p.Slug,
		Title:     p.Title,
		ShortDesc: p.ShortDesc,
		Details:   p.Details,
		Tech:      tech,
		Media:     media,
		Github:    p.GithubURL,
		Demo:      p.DemoURL,
	}
}

// ProjectFilter narrows a project listing.
type ProjectFilter struct {
	Status ProjectStatus
}

// Achievement is a dated accomplishment shown on the site.
type Achievement struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	CoverImage  string `json:"cover"`
	Date        string `json:"date"`
	Visible     bool   `json:"visible"`
}

// AchievementView is the public JSON shape of an achievement.
type AchievementView struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Cover       string `json:"cover"`
	Date        string `json:"date"`
}

// View converts an achievement to its public shape.
func (a Achievement) View() AchievementView {
	return AchievementView{
		Title:       a.Title,
		Description: a.Description,
		Icon:        a.Icon,
		Cover:       a.CoverImage,
		Date:        a.Date,
	}
}

// AddAchievementRequest defines achievement creation inputs.
type AddAchievementRequest struct {
	Title       string `validate:"required,max=200"`
	Description string `validate:"required,max=2000"`
	Icon        string `validate:"required,max=200"`
	CoverImage  string `validate:"max=500"`
	Date        string `validate:"required,datetime=2006-01-02"`
}
