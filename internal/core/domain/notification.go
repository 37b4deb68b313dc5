package domain

import "time"

// Notification is an in-app message delivered to a single user.
type Notification struct {
	ID        int64     `json:"notification_id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_date"`
}

// Report is a free-form write-up authored by a user.
type Report struct {
	ID        int64     `json:"report_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_date"`
}
