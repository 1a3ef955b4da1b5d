package services

import (
	"context"
	"fmt"
	"sort"

	"codeck-client/internal/api"
	"codeck-client/internal/models"

	"github.com/rs/zerolog/log"
)

// placeholderName is shown when a creator lookup fails
const placeholderName = "Unknown"

// FeedService produces the display-ordered activity sequence for a scope,
// either the cross-group feed or a single group's listing.
type FeedService struct {
	api *api.Client
}

// NewFeedService creates a new feed service
func NewFeedService(apiClient *api.Client) *FeedService {
	return &FeedService{api: apiClient}
}

// Load fetches the activities for userID and returns them newest first.
// groupID == "" loads the feed across all of the user's groups; otherwise
// the given group's activities. The sort is stable, so activities sharing a
// date keep the order the backend returned them in.
func (s *FeedService) Load(ctx context.Context, userID, groupID string) ([]models.ActivityWithGroup, error) {
	var (
		activities []models.Activity
		err        error
	)
	if groupID == "" {
		activities, err = s.api.GetUserFeed(ctx, userID)
	} else {
		activities, err = s.api.GetGroupActivities(ctx, groupID, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Date.After(activities[j].Date)
	})

	feed := make([]models.ActivityWithGroup, len(activities))
	for i, activity := range activities {
		feed[i] = models.ActivityWithGroup{Activity: activity, CreatorName: placeholderName}
	}
	return feed, nil
}

// Enrich resolves creator identity, group and comment count for each feed
// entry in place. Every lookup is best-effort: a failure logs, leaves the
// placeholder and never blocks the activity itself from rendering.
func (s *FeedService) Enrich(ctx context.Context, feed []models.ActivityWithGroup, requesterID string) {
	users := make(map[string]*models.User)
	groups := make(map[string]*models.Group)

	for i := range feed {
		entry := &feed[i]

		creator, ok := users[entry.CreatorID]
		if !ok {
			var err error
			creator, err = s.api.GetUser(ctx, entry.CreatorID)
			if err != nil {
				log.Warn().Err(err).
					Str("activity_id", entry.ID).
					Str("creator_id", entry.CreatorID).
					Msg("Failed to resolve activity creator")
			}
			users[entry.CreatorID] = creator
		}
		if creator != nil {
			entry.CreatorName = creator.Name
		}

		if entry.GroupID != nil {
			group, ok := groups[*entry.GroupID]
			if !ok {
				var err error
				group, err = s.api.GetGroup(ctx, *entry.GroupID, requesterID)
				if err != nil {
					log.Warn().Err(err).
						Str("activity_id", entry.ID).
						Str("group_id", *entry.GroupID).
						Msg("Failed to resolve activity group")
				}
				groups[*entry.GroupID] = group
			}
			entry.Group = group
		}

		comments, err := s.api.GetActivityComments(ctx, entry.ID)
		if err != nil {
			log.Warn().Err(err).
				Str("activity_id", entry.ID).
				Msg("Failed to load comment count")
			continue
		}
		entry.CommentCount = comments.CommentCount
	}
}
