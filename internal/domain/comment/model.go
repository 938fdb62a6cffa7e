package comment

import "time"

// TimestampLayout is the minute-precision format comments are stamped with.
const TimestampLayout = "2006-01-02 15:04"

// Comment is a visitor-submitted note.
type Comment struct {
	ID          int64     `json:"-"`
	Name        string    `json:"name"`
	Text        string    `json:"comment"`
	SubmittedAt time.Time `json:"-"`
}

// Timestamp renders SubmittedAt at minute precision.
func (c Comment) Timestamp() string {
	return c.SubmittedAt.Format(TimestampLayout)
}

// View is the public JSON shape of a comment.
type View struct {
	Name      string `json:"name"`
	Comment   string `json:"comment"`
	Timestamp string `json:"timestamp"`
}

// View converts a comment to its public shape.
func (c Comment) View() View {
	return View{Name: c.Name, Comment: c.Text, Timestamp: c.Timestamp()}
}
