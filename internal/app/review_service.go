package app

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/edulab/projhub/internal/app/fanout"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time check that ReviewService implements ports.ReviewService.
var _ ports.ReviewService = (*ReviewService)(nil)

// reviewFanoutWorkers bounds the per-team project lookups run concurrently
// while building a mentor's review queue.
const reviewFanoutWorkers = 4

// ReviewService answers mentor review queries by reading across the team and
// project stores. It holds no state of its own.
type ReviewService struct {
	teams    ports.TeamService
	projects ports.ProjectService
	logger   *slog.Logger
}

// NewReviewService creates a ReviewService over the two stores.
func NewReviewService(teams ports.TeamService, projects ports.ProjectService, logger *slog.Logger) *ReviewService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ReviewService{teams: teams, projects: projects, logger: logger}
}

// PendingReviews returns all submitted deliverables across the mentor's
// teams, in team order. Teams without a project contribute nothing.
func (s *ReviewService) PendingReviews(ctx context.Context, mentorID string) ([]ports.PendingReview, error) {
	s.logger.InfoContext(ctx, "collecting pending reviews", slog.String("mentor_id", mentorID))

	mentorTeams, err := s.teams.MentorTeams(ctx, mentorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list mentor teams",
			slog.String("operation", "PendingReviews"),
			slog.String("mentor_id", mentorID),
			slog.Any("error", err),
		)
		return nil, err
	}

	results := fanout.Run(ctx, reviewFanoutWorkers, mentorTeams,
		func(ctx context.Context, t team.Team) ([]ports.PendingReview, error) {
			proj, err := s.projects.TeamProject(ctx, t.ID)
			if err != nil {
				return nil, err
			}

			var reviews []ports.PendingReview
			for _, d := range proj.Deliverables {
				if d.Status == deliverable.StatusSubmitted {
					reviews = append(reviews, ports.PendingReview{
						Deliverable: d,
						Project:     *proj,
						Team:        t,
					})
				}
			}
			return reviews, nil
		})

	pending := make([]ports.PendingReview, 0)
	for i, res := range results {
		if res.Err != nil {
			// A team without a project simply has nothing to review.
			if errors.Is(res.Err, domain.ErrNotFound) {
				continue
			}
			s.logger.ErrorContext(ctx, "failed to read team project",
				slog.String("operation", "PendingReviews"),
				slog.String("team_id", mentorTeams[i].ID),
				slog.Any("error", res.Err),
			)
			return nil, res.Err
		}
		pending = append(pending, res.Value...)
	}
	return pending, nil
}

// RecentActivity returns deliverables that have been updated or submitted
// across the mentor's teams, most recent first. A limit of zero returns all.
func (s *ReviewService) RecentActivity(ctx context.Context, mentorID string, limit int) ([]ports.ActivityItem, error) {
	s.logger.InfoContext(ctx, "collecting recent activity",
		slog.String("mentor_id", mentorID),
		slog.Int("limit", limit),
	)

	mentorTeams, err := s.teams.MentorTeams(ctx, mentorID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list mentor teams",
			slog.String("operation", "RecentActivity"),
			slog.String("mentor_id", mentorID),
			slog.Any("error", err),
		)
		return nil, err
	}

	results := fanout.Run(ctx, reviewFanoutWorkers, mentorTeams,
		func(ctx context.Context, t team.Team) ([]ports.ActivityItem, error) {
			proj, err := s.projects.TeamProject(ctx, t.ID)
			if err != nil {
				return nil, err
			}

			var items []ports.ActivityItem
			for _, d := range proj.Deliverables {
				at := d.UpdatedAt
				if d.SubmittedAt.After(at) {
					at = d.SubmittedAt
				}
				if at.IsZero() {
					continue
				}
				items = append(items, ports.ActivityItem{
					Deliverable: d,
					Project:     *proj,
					Team:        t,
					OccurredAt:  at,
				})
			}
			return items, nil
		})

	activity := make([]ports.ActivityItem, 0)
	for i, res := range results {
		if res.Err != nil {
			if errors.Is(res.Err, domain.ErrNotFound) {
				continue
			}
			s.logger.ErrorContext(ctx, "failed to read team project",
				slog.String("operation", "RecentActivity"),
				slog.String("team_id", mentorTeams[i].ID),
				slog.Any("error", res.Err),
			)
			return nil, res.Err
		}
		activity = append(activity, res.Value...)
	}

	sort.SliceStable(activity, func(i, j int) bool {
		return activity[i].OccurredAt.After(activity[j].OccurredAt)
	})
	if limit > 0 && len(activity) > limit {
		activity = activity[:limit]
	}
	return activity, nil
}
