package catalog

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

// DocumentProject is one entry of the flat project document.
type DocumentProject struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	ShortDesc string          `json:"shortDesc"`
	Details   string          `json:"details"`
	Tech      json.RawMessage `json:"tech"`
	Media     json.RawMessage `json:"media"`
	Status    ProjectStatus   `json:"status,omitempty"`
	Rank      *float64        `json:"rank,omitempty"`
	Links     DocumentLinks   `json:"links"`
}

// DocumentLinks holds a project's external links.
type DocumentLinks struct {
	Github *string `json:"github"`
	Demo   *string `json:"demo"`
}

// DecodeDocument reads a project document. Missing statuses default to
// completed and every project is visible. An absent tech list or media
// object reads as empty; an explicit null is kept as nil. Media is carried
// as raw JSON so its values survive a round trip unchanged.
func DecodeDocument(r io.Reader) ([]Project, error) {
	var entries []DocumentProject
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding project document: %w", err)
	}

	projects := make([]Project, 0, len(entries))
	for _, e := range entries {
		status := e.Status
		if status == "" {
			status = StatusCompleted
		}
		tech, err := decodeTech(e.ID, e.Tech)
		if err != nil {
			return nil, err
		}
		media := e.Media
		if len(media) == 0 {
			media = emptyMedia()
		}
		projects = append(projects, Project{
			Slug:      e.ID,
			Title:     e.Title,
			ShortDesc: e.ShortDesc,
			Details:   e.Details,
			Tech:      tech,
			Media:     media,
			GithubURL: e.Links.Github,
			DemoURL:   e.Links.Demo,
			Rank:      e.Rank,
			Status:    status,
			Visible:   true,
		})
	}
	return projects, nil
}

// EncodeDocument writes projects as an indented project document.
func EncodeDocument(w io.Writer, projects []Project) error {
	entries := make([]DocumentProject, 0, len(projects))
	for _, p := range projects {
		tech, err := json.Marshal(p.Tech)
		if err != nil {
			return fmt.Errorf("encoding tech for %q: %w", p.Slug, err)
		}
		media := p.Media
		if len(media) == 0 {
			media = emptyMedia()
		}
		entries = append(entries, DocumentProject{
			ID:        p.Slug,
			Title:     p.Title,
			ShortDesc: p.ShortDesc,
			Details:   p.Details,
			Tech:      tech,
			Media:     media,
			Status:    p.Status,
			Rank:      p.Rank,
			Links: DocumentLinks{
				Github: p.GithubURL,
				Demo:   p.DemoURL,
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding project document: %w", err)
	}
	return nil
}

func decodeTech(slug string, raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 {
		return []string{}, nil
	}
	var tech []string
	if err := json.Unmarshal(raw, &tech); err != nil {
		return nil, fmt.Errorf("decoding tech for %q: %w", slug, err)
	}
	return tech, nil
}

func emptyMedia() json.RawMessage {
	return json.RawMessage(`{}`)
}
