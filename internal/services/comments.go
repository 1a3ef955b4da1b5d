package services

import (
	"context"
	"fmt"

	"codeck-client/internal/api"
	"codeck-client/internal/models"
)

// CommentThread holds the in-memory comment list of one activity. The thread
// is loaded lazily on first expansion; a newly posted comment is appended to
// the list as returned by the backend instead of re-fetching the whole
// thread, and it is appended last without re-sorting by timestamp.
type CommentThread struct {
	api        *api.Client
	activityID string
	loaded     bool
	comments   []models.Comment
}

// NewCommentThread creates an unloaded thread for an activity
func NewCommentThread(apiClient *api.Client, activityID string) *CommentThread {
	return &CommentThread{api: apiClient, activityID: activityID}
}

// Load fetches the thread on first call; later calls are no-ops
func (t *CommentThread) Load(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	resp, err := t.api.GetActivityComments(ctx, t.activityID)
	if err != nil {
		return fmt.Errorf("failed to load comments: %w", err)
	}
	t.comments = resp.Comments
	t.loaded = true
	return nil
}

// Add posts a comment and appends the created comment to the thread
func (t *CommentThread) Add(ctx context.Context, userID, content string) (*models.Comment, error) {
	req := models.CommentCreateRequest{UserID: userID, Content: content}
	comment, err := t.api.CreateComment(ctx, t.activityID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	t.comments = append(t.comments, *comment)
	return comment, nil
}

// Delete removes a comment on the backend and drops it from the thread
func (t *CommentThread) Delete(ctx context.Context, commentID, requesterID string) error {
	if err := t.api.DeleteComment(ctx, commentID, requesterID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	for i, comment := range t.comments {
		if comment.ID == commentID {
			t.comments = append(t.comments[:i], t.comments[i+1:]...)
			break
		}
	}
	return nil
}

// Comments returns a copy of the current thread
func (t *CommentThread) Comments() []models.Comment {
	out := make([]models.Comment, len(t.comments))
	copy(out, t.comments)
	return out
}

// Len returns the number of comments currently held
func (t *CommentThread) Len() int {
	return len(t.comments)
}

// Loaded reports whether the thread has been fetched at least once
func (t *CommentThread) Loaded() bool {
	return t.loaded
}
