package model

import (
	"fmt"
	"time"
)

// Protip is a note attached to a task.
type Protip struct {
	ID        int64
	Task      string
	Content   string
	CreatedAt time.Time
}

// String renders the protip the way it is listed to users.
func (p Protip) String() string {
	return fmt.Sprintf("%d. %s", p.ID, p.Content)
}
