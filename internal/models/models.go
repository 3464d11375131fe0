package models

import (
	"time"
)

// Event is the root of the judging hierarchy
type Event struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Contest belongs to an event
type Contest struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Category belongs to a contest
type Category struct {
	ID        string    `json:"id" db:"id"`
	ContestID string    `json:"contest_id" db:"contest_id"`
	EventID   string    `json:"event_id" db:"event_id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Contestant represents a contestant that can be assigned to categories
type Contestant struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// Judge links a judging seat to an authenticated user
type Judge struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
}

// Score is a single judge's score for a contestant in a category
type Score struct {
	ID           string    `json:"id" db:"id"`
	CategoryID   string    `json:"category_id" db:"category_id"`
	JudgeID      string    `json:"judge_id" db:"judge_id"`
	ContestantID string    `json:"contestant_id" db:"contestant_id"`
	Points       int       `json:"points" db:"points"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Actor is the authenticated principal invoking a workflow operation
type Actor struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// AuditLog represents an audit log entry
type AuditLog struct {
	ID         string    `json:"id" db:"id"`
	UserID     *string   `json:"user_id,omitempty" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	Resource   string    `json:"resource" db:"resource"`
	ResourceID *string   `json:"resource_id,omitempty" db:"resource_id"`
	Details    *string   `json:"details,omitempty" db:"details"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
