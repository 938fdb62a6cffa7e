package activity

import "time"

// ActivityType represents the type of admin activity event
type ActivityType string

const (
	TypeAdminLogin         ActivityType = "admin_login"
	TypeAchievementAdded   ActivityType = "achievement_added"
	TypeAchievementToggled ActivityType = "achievement_toggled"
	TypeCommentDeleted     ActivityType = "comment_deleted"
	TypeResumeUploaded     ActivityType = "resume_uploaded"
	TypeStatsReset         ActivityType = "stats_reset"
)

// ActivityEntry represents an event in the activity log
type ActivityEntry struct {
	ID           int64        `json:"id"`
	ActivityType ActivityType `json:"type"`
	Summary      string       `json:"summary"`
	Details      string       `json:"details,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}
