package activity

// ListActivityOptions provides filtering options for listing activity.
type ListActivityOptions struct {
	RunID        string
	ActivityType *ActivityType
	Limit        int
	Offset       int
}
