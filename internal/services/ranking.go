package services

import (
	"context"
	"fmt"
	"sort"

	"codeck-client/internal/api"
	"codeck-client/internal/models"

	"github.com/rs/zerolog/log"
)

// RankingService computes a per-group leaderboard of members ordered by
// activity count.
type RankingService struct {
	api *api.Client
}

// NewRankingService creates a new ranking service
func NewRankingService(apiClient *api.Client) *RankingService {
	return &RankingService{api: apiClient}
}

// Rank fetches the group's members and aggregates each member's activity
// count and display identity (nickname when set, else user name). A member
// whose activity or identity lookup fails is logged and omitted; one bad
// lookup must not blank the whole leaderboard. The result is sorted by count
// descending with a stable sort; rank is positional (index + 1), so equal
// counts receive consecutive ranks.
func (s *RankingService) Rank(ctx context.Context, groupID, requesterID string) ([]models.UserStats, error) {
	membersResp, err := s.api.GetGroupMembers(ctx, groupID, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load group members: %w", err)
	}

	stats := make([]models.UserStats, 0, len(membersResp.Members))
	for _, member := range membersResp.Members {
		activities, err := s.api.GetUserActivities(ctx, member.UserID)
		if err != nil {
			log.Warn().Err(err).
				Str("group_id", groupID).
				Str("user_id", member.UserID).
				Msg("Skipping member, activity lookup failed")
			continue
		}

		user, err := s.api.GetUser(ctx, member.UserID)
		if err != nil {
			log.Warn().Err(err).
				Str("group_id", groupID).
				Str("user_id", member.UserID).
				Msg("Skipping member, identity lookup failed")
			continue
		}

		name := user.Name
		if member.Nickname != nil && *member.Nickname != "" {
			name = *member.Nickname
		}

		stats = append(stats, models.UserStats{
			UserID:        member.UserID,
			UserName:      name,
			ActivityCount: len(activities),
		})
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].ActivityCount > stats[j].ActivityCount
	})
	return stats, nil
}
