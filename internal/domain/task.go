package domain

import "time"

// Task is a work item owned by exactly one user.
type Task struct {
	ID        int64
	Title     string
	Completed bool
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
