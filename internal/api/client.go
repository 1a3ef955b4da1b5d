package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"codeck-client/internal/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TokenSource yields the current bearer token, or "" when no session exists.
// Every request takes a fresh snapshot; the client never stores the token.
type TokenSource func() string

// Client is the single façade for all CODECK backend access. It attaches the
// session token to outgoing requests, decodes typed results and maps every
// non-success outcome to *Error. It holds no cache and never retries.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

// New creates a client for the backend at baseURL. token may be nil for a
// client that only performs unauthenticated calls.
func New(baseURL string, token TokenSource) *Client {
	return NewWithHTTPClient(baseURL, token, http.DefaultClient)
}

// NewWithHTTPClient creates a client using a caller-supplied http.Client
func NewWithHTTPClient(baseURL string, token TokenSource, httpClient *http.Client) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		token:   token,
	}
}

// do issues a single request. body and out may be nil; query may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", req.Header.Get("X-Request-Id")).
		Msg("API call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// Login authenticates with email and password. No token is required.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new user account. No token is required.
func (c *Client) Register(ctx context.Context, req models.UserCreateRequest) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUser retrieves a user by id
func (c *Client) GetUser(ctx context.Context, userID string) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+userID, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserActivities lists all activities created by a user
func (c *Client) GetUserActivities(ctx context.Context, userID string) ([]models.Activity, error) {
	var activities []models.Activity
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/activities", nil, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetUserGroups lists the groups a user belongs to
func (c *Client) GetUserGroups(ctx context.Context, userID string) ([]models.Group, error) {
	var groups []models.Group
	if err := c.do(ctx, http.MethodGet, "/users/"+userID+"/groups", nil, nil, &groups); err != nil {
		return nil, err
	}
	return groups, nil
}

// CreateActivity creates an activity, optionally inside a group
func (c *Client) CreateActivity(ctx context.Context, req models.ActivityCreateRequest) (*models.Activity, error) {
	var activity models.Activity
	if err := c.do(ctx, http.MethodPost, "/activities", nil, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetUserFeed retrieves the activity feed across all of a user's groups
func (c *Client) GetUserFeed(ctx context.Context, userID string) ([]models.Activity, error) {
	query := url.Values{"user_id": {userID}}
	var activities []models.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/feed", query, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivity retrieves a single activity by id
func (c *Client) GetActivity(ctx context.Context, activityID string) (*models.Activity, error) {
	var activity models.Activity
	if err := c.do(ctx, http.MethodGet, "/activities/"+activityID, nil, nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity applies a partial update to an activity
func (c *Client) UpdateActivity(ctx context.Context, activityID string, req models.ActivityUpdateRequest) (*models.Activity, error) {
	var activity models.Activity
	if err := c.do(ctx, http.MethodPut, "/activities/"+activityID, nil, req, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity deletes an activity. The backend authorizes against creatorID.
func (c *Client) DeleteActivity(ctx context.Context, activityID, creatorID string) error {
	req := models.ActivityDeleteRequest{CreatorID: creatorID}
	return c.do(ctx, http.MethodDelete, "/activities/"+activityID, nil, req, nil)
}

// CreateGroup creates a new group
func (c *Client) CreateGroup(ctx context.Context, req models.GroupCreateRequest) (*models.Group, error) {
	var group models.Group
	if err := c.do(ctx, http.MethodPost, "/groups", nil, req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// GetGroup retrieves a group; the backend checks requesterID for access
func (c *Client) GetGroup(ctx context.Context, groupID, requesterID string) (*models.Group, error) {
	query := url.Values{"requester_id": {requesterID}}
	var group models.Group
	if err := c.do(ctx, http.MethodGet, "/groups/"+groupID, query, nil, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// UpdateGroup applies a partial update to a group
func (c *Client) UpdateGroup(ctx context.Context, groupID string, req models.GroupUpdateRequest) (*models.Group, error) {
	var group models.Group
	if err := c.do(ctx, http.MethodPut, "/groups/"+groupID, nil, req, &group); err != nil {
		return nil, err
	}
	return &group, nil
}

// DeleteGroup deletes a group. Only the creator may delete.
func (c *Client) DeleteGroup(ctx context.Context, groupID, creatorID string) error {
	req := models.GroupDeleteRequest{CreatorID: creatorID}
	return c.do(ctx, http.MethodDelete, "/groups/"+groupID, nil, req, nil)
}

// GetGroupActivities lists all activities posted in a group
func (c *Client) GetGroupActivities(ctx context.Context, groupID, requesterID string) ([]models.Activity, error) {
	query := url.Values{"requester_id": {requesterID}}
	var activities []models.Activity
	if err := c.do(ctx, http.MethodGet, "/groups/"+groupID+"/activities", query, nil, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetGroupMembers lists the members of a group
func (c *Client) GetGroupMembers(ctx context.Context, groupID, requesterID string) (*models.GroupMembersResponse, error) {
	query := url.Values{"requester_id": {requesterID}}
	var resp models.GroupMembersResponse
	if err := c.do(ctx, http.MethodGet, "/groups/"+groupID+"/members", query, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddGroupMember adds a user to a group directly
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID string) error {
	req := models.AddMemberRequest{UserID: userID}
	return c.do(ctx, http.MethodPost, "/groups/"+groupID+"/members", nil, req, nil)
}

// RemoveGroupMember removes a user from a group
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, userID, requesterID string) error {
	req := models.RemoveMemberRequest{UserID: userID, RequesterID: requesterID}
	return c.do(ctx, http.MethodDelete, "/groups/"+groupID+"/members", nil, req, nil)
}

// SetMemberNickname sets a member's display nickname within a group
func (c *Client) SetMemberNickname(ctx context.Context, groupID, userID, requesterID, nickname string) error {
	req := models.SetNicknameRequest{UserID: userID, RequesterID: requesterID, Nickname: nickname}
	return c.do(ctx, http.MethodPut, "/groups/"+groupID+"/members/nickname", nil, req, nil)
}

// DeleteMemberNickname removes a member's nickname override
func (c *Client) DeleteMemberNickname(ctx context.Context, groupID, userID, requesterID string) error {
	req := models.DeleteNicknameRequest{UserID: userID, RequesterID: requesterID}
	return c.do(ctx, http.MethodDelete, "/groups/"+groupID+"/members/nickname", nil, req, nil)
}

// CreateGroupInvite creates an invite code for a group. expiresAt is an
// RFC3339 timestamp, or nil for a non-expiring invite.
func (c *Client) CreateGroupInvite(ctx context.Context, groupID, creatorID string, expiresAt *string) (*models.GroupInvite, error) {
	req := models.InviteCreateRequest{CreatorID: creatorID, ExpiresAt: expiresAt}
	var invite models.GroupInvite
	if err := c.do(ctx, http.MethodPost, "/groups/"+groupID+"/invites", nil, req, &invite); err != nil {
		return nil, err
	}
	return &invite, nil
}

// GetGroupInvites lists the invite codes of a group
func (c *Client) GetGroupInvites(ctx context.Context, groupID string) ([]models.GroupInvite, error) {
	var invites []models.GroupInvite
	if err := c.do(ctx, http.MethodGet, "/groups/"+groupID+"/invites", nil, nil, &invites); err != nil {
		return nil, err
	}
	return invites, nil
}

// JoinGroupByInvite redeems an invite code for the given user
func (c *Client) JoinGroupByInvite(ctx context.Context, inviteCode, userID string) error {
	req := models.JoinGroupRequest{UserID: userID}
	return c.do(ctx, http.MethodPost, "/invites/"+inviteCode+"/join", nil, req, nil)
}

// DeactivateInvite revokes an invite code
func (c *Client) DeactivateInvite(ctx context.Context, inviteCode, requesterID string) error {
	req := models.DeactivateInviteRequest{RequesterID: requesterID}
	return c.do(ctx, http.MethodDelete, "/invites/"+inviteCode+"/deactivate", nil, req, nil)
}

// GetActivityComments retrieves the comment thread of an activity
func (c *Client) GetActivityComments(ctx context.Context, activityID string) (*models.CommentsResponse, error) {
	var resp models.CommentsResponse
	if err := c.do(ctx, http.MethodGet, "/activities/"+activityID+"/comments", nil, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateComment posts a comment on an activity
func (c *Client) CreateComment(ctx context.Context, activityID string, req models.CommentCreateRequest) (*models.Comment, error) {
	var comment models.Comment
	if err := c.do(ctx, http.MethodPost, "/activities/"+activityID+"/comments", nil, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment. The backend authorizes against requesterID.
func (c *Client) DeleteComment(ctx context.Context, commentID, requesterID string) error {
	req := models.CommentDeleteRequest{RequesterID: requesterID}
	return c.do(ctx, http.MethodDelete, "/comments/"+commentID, nil, req, nil)
}
