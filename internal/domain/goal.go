package domain

import "time"

// GoalStatus mirrors the status column of goals
type GoalStatus int

const (
	StatusToDo GoalStatus = iota + 1
	StatusInProgress
	StatusDone
	StatusArchived
)

// Label returns the human-readable status name
func (s GoalStatus) Label() string {
	switch s {
	case StatusToDo:
		return "To do"
	case StatusInProgress:
		return "In progress"
	case StatusDone:
		return "Done"
	case StatusArchived:
		return "Archived"
	}
	return "Unknown"
}

// GoalPriority mirrors the priority column of goals
type GoalPriority int

const (
	PriorityLow GoalPriority = iota + 1
	PriorityMedium
	PriorityHigh
	PriorityCritical
)

// Label returns the human-readable priority name
func (p GoalPriority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	case PriorityCritical:
		return "Critical"
	}
	return "Unknown"
}

// BoardRole is a participant's role on a board
type BoardRole int

const (
	RoleOwner BoardRole = iota + 1
	RoleWriter
	RoleReader
)

// Goal represents a goal as seen by the bot
type Goal struct {
	ID         int64
	Title      string
	DueDate    *time.Time
	Status     GoalStatus
	Priority   GoalPriority
	CategoryID int64
	UserID     int64
}

// DueDateString returns due date in YYYY-MM-DD format, or "" when unset
func (g Goal) DueDateString() string {
	if g.DueDate == nil {
		return ""
	}
	return g.DueDate.Format("2006-01-02")
}

// Category is a goal category the user can pick from
type Category struct {
	ID    int64
	Title string
}
