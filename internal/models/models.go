package models

import "time"

// User represents a registered CODECK user
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// Activity represents a user-authored activity post
type Activity struct {
	ID            string    `json:"id"`
	CreatorID     string    `json:"creator_id"`
	GroupID       *string   `json:"group_id,omitempty"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ActivityImage *string   `json:"activity_image,omitempty"`
	Date          time.Time `json:"date"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// Group represents a named collection of users with a date window
type Group struct {
	ID          string     `json:"id"`
	CreatorID   string     `json:"creator_id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	GroupImage  *string    `json:"group_image,omitempty"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     time.Time  `json:"end_date"`
	CreatedAt   time.Time  `json:"created_at,omitzero"`
	UpdatedAt   time.Time  `json:"updated_at,omitzero"`
}

// GroupMember represents the membership of a user in a group
type GroupMember struct {
	UserID   string  `json:"user_id"`
	GroupID  string  `json:"group_id"`
	Nickname *string `json:"nickname,omitempty"`
}

// GroupInvite represents a time-boxed code that grants group membership
type GroupInvite struct {
	InviteCode string     `json:"invite_code"`
	GroupID    string     `json:"group_id"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// Comment represents a comment on an activity
type Comment struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activity_id"`
	UserID     string    `json:"user_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// ActivityWithGroup is an Activity enriched for display. Enrichment is
// best-effort: Group stays nil and CreatorName falls back to a placeholder
// when the lookup fails.
type ActivityWithGroup struct {
	Activity
	Group        *Group `json:"group,omitempty"`
	CreatorName  string `json:"creator_name,omitempty"`
	CommentCount int    `json:"comment_count,omitempty"`
}

// UserStats is a per-member aggregate computed for group rankings.
// It is never persisted and is recomputed on every ranking view.
type UserStats struct {
	UserID        string `json:"user_id"`
	UserName      string `json:"user_name"`
	ActivityCount int    `json:"activity_count"`
}
