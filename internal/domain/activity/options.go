package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
