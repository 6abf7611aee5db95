package domain

import "time"

// Step identifies which handler continues a chat's flow
type Step string

const (
	StepIdle                   Step = "idle"
	StepAwaitingCategoryChoice Step = "awaiting_category_choice"
	StepAwaitingGoalTitle      Step = "awaiting_goal_title"
)

// ConversationState holds temporary data for a chat's pending flow.
// A stored state never has Step == StepIdle.
type ConversationState struct {
	Step Step
	// Categories maps the 1-based index shown to the user to a category id
	Categories map[int]int64
	// CategoryID is set once a listed index was chosen
	CategoryID int64
	UpdatedAt  time.Time
}

// Clone returns a deep copy so callers never share the category map
func (s *ConversationState) Clone() *ConversationState {
	if s == nil {
		return nil
	}
	c := *s
	if s.Categories != nil {
		c.Categories = make(map[int]int64, len(s.Categories))
		for k, v := range s.Categories {
			c.Categories[k] = v
		}
	}
	return &c
}
