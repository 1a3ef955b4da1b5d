package models

// Request and response payloads exchanged with the CODECK backend. Dates on
// create/update requests travel as YYYY-MM-DD strings, which is what the
// backend accepts for form-entered dates; entity timestamps come back as
// RFC3339.

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the result of a successful login
type LoginResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// UserCreateRequest is the body of POST /users
type UserCreateRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivityCreateRequest is the body of POST /activities.
// CreatorID is required for the backend's authorization check.
type ActivityCreateRequest struct {
	CreatorID     string  `json:"creator_id"`
	GroupID       *string `json:"group_id,omitempty"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ActivityImage *string `json:"activity_image,omitempty"`
	Date          string  `json:"date"`
}

// ActivityUpdateRequest is the body of PUT /activities/{id}; every field is
// optional and only set fields are sent.
type ActivityUpdateRequest struct {
	Title         *string `json:"title,omitempty"`
	Description   *string `json:"description,omitempty"`
	ActivityImage *string `json:"activity_image,omitempty"`
	Date          *string `json:"date,omitempty"`
}

// ActivityDeleteRequest is the body of DELETE /activities/{id}
type ActivityDeleteRequest struct {
	CreatorID string `json:"creator_id"`
}

// GroupCreateRequest is the body of POST /groups
type GroupCreateRequest struct {
	CreatorID   string  `json:"creator_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	GroupImage  *string `json:"group_image,omitempty"`
	EndDate     string  `json:"end_date"`
}

// GroupUpdateRequest is the body of PUT /groups/{id}
type GroupUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	GroupImage  *string `json:"group_image,omitempty"`
	EndDate     *string `json:"end_date,omitempty"`
}

// GroupDeleteRequest is the body of DELETE /groups/{id}
type GroupDeleteRequest struct {
	CreatorID string `json:"creator_id"`
}

// AddMemberRequest is the body of POST /groups/{id}/members
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// RemoveMemberRequest is the body of DELETE /groups/{id}/members
type RemoveMemberRequest struct {
	UserID      string `json:"user_id"`
	RequesterID string `json:"requester_id"`
}

// SetNicknameRequest is the body of PUT /groups/{id}/members/nickname
type SetNicknameRequest struct {
	UserID      string `json:"user_id"`
	RequesterID string `json:"requester_id"`
	Nickname    string `json:"nickname"`
}

// DeleteNicknameRequest is the body of DELETE /groups/{id}/members/nickname
type DeleteNicknameRequest struct {
	UserID      string `json:"user_id"`
	RequesterID string `json:"requester_id"`
}

// InviteCreateRequest is the body of POST /groups/{id}/invites
type InviteCreateRequest struct {
	CreatorID string  `json:"creator_id"`
	ExpiresAt *string `json:"expires_at,omitempty"`
}

// JoinGroupRequest is the body of POST /invites/{code}/join
type JoinGroupRequest struct {
	UserID string `json:"user_id"`
}

// DeactivateInviteRequest is the body of DELETE /invites/{code}/deactivate
type DeactivateInviteRequest struct {
	RequesterID string `json:"requester_id"`
}

// CommentCreateRequest is the body of POST /activities/{id}/comments
type CommentCreateRequest struct {
	UserID  string `json:"user_id"`
	Content string `json:"content"`
}

// CommentDeleteRequest is the body of DELETE /comments/{id}
type CommentDeleteRequest struct {
	RequesterID string `json:"requester_id"`
}

// CommentsResponse is the result of GET /activities/{id}/comments
type CommentsResponse struct {
	ActivityID   string    `json:"activity_id"`
	Comments     []Comment `json:"comments"`
	CommentCount int       `json:"comment_count"`
}

// GroupMembersResponse is the result of GET /groups/{id}/members
type GroupMembersResponse struct {
	GroupID     string        `json:"group_id"`
	Members     []GroupMember `json:"members"`
	MemberCount int           `json:"member_count"`
}

// ErrorResponse is the backend's uniform error body
type ErrorResponse struct {
	Error string `json:"error"`
}
