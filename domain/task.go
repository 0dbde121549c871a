package domain

import "time"

// Task is a single to-do item. The owner is fixed at creation.
type Task struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Content   string    `json:"content"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
