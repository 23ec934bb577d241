package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/edulab/projhub/internal/app/events"
	"github.com/edulab/projhub/internal/domain"
	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/ports"
)

// Compile-time check that ProjectService implements ports.ProjectService.
var _ ports.ProjectService = (*ProjectService)(nil)

// ProjectServiceConfig holds the store's tunables; see TeamServiceConfig for
// the latency contract.
type ProjectServiceConfig struct {
	Latency time.Duration
	Sleep   func(time.Duration)
	Now     func() time.Time
	Initial []project.Project
}

// ProjectService is the authoritative holder of all projects and their
// deliverable sequences. It enforces one project per team and the
// deliverable review cycle.
type ProjectService struct {
	mu       sync.RWMutex
	projects []project.Project

	hub    *events.Hub
	logger *slog.Logger

	latency time.Duration
	sleep   func(time.Duration)
	now     func() time.Time
}

// NewProjectService creates the project store, seeded with cfg.Initial.
func NewProjectService(cfg ProjectServiceConfig, hub *events.Hub, logger *slog.Logger) *ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sleep := cfg.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &ProjectService{
		projects: cloneProjects(cfg.Initial),
		hub:      hub,
		logger:   logger,
		latency:  cfg.Latency,
		sleep:    sleep,
		now:      now,
	}
}

func (s *ProjectService) simulateLatency() {
	if s.latency > 0 {
		s.sleep(s.latency)
	}
}

// ListProjects returns all projects in creation order.
func (s *ProjectService) ListProjects(ctx context.Context) ([]project.Project, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneProjects(s.projects), nil
}

// GetProject returns a single project by id.
func (s *ProjectService) GetProject(ctx context.Context, id string) (*project.Project, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.findLocked(id)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c := cloneProject(*p)
	return &c, nil
}

// TeamProject returns the project owned by the given team.
func (s *ProjectService) TeamProject(ctx context.Context, teamID string) (*project.Project, error) {
	s.simulateLatency()

	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.teamProjectLocked(teamID)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	c := cloneProject(*p)
	return &c, nil
}

// CreateProject creates a project in the planning state with no deliverables.
func (s *ProjectService) CreateProject(ctx context.Context, title, description, teamID string) (*project.Project, error) {
	s.logger.InfoContext(ctx, "creating project", slog.String("title", title), slog.String("team_id", teamID))
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	np := project.Project{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		TeamID:      teamID,
		Status:      project.StatusPlanning,
		CreatedAt:   s.now().UTC(),
	}
	if err := np.Validate(); err != nil {
		return nil, err
	}
	if s.teamProjectLocked(teamID) != nil {
		return nil, domain.ErrDuplicateProject
	}

	s.projects = append(s.projects, np)
	s.hub.Publish(events.Event{Kind: events.KindProjectCreated, ProjectID: np.ID, TeamID: teamID, At: s.now()})

	c := cloneProject(np)
	return &c, nil
}

// AddDeliverable appends a pending deliverable, assigning the next id in the
// project-scoped sequence.
func (s *ProjectService) AddDeliverable(ctx context.Context, projectID string, d deliverable.Deliverable) (*deliverable.Deliverable, error) {
	s.logger.InfoContext(ctx, "adding deliverable", slog.String("project_id", projectID), slog.String("title", d.Title))
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, domain.ErrNotFound
	}

	nd := deliverable.Deliverable{
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Status:      deliverable.StatusPending,
	}
	if err := nd.Validate(); err != nil {
		return nil, err
	}
	nd.ID = p.NextDeliverableID()

	p.Deliverables = append(p.Deliverables, nd)
	s.hub.Publish(events.Event{
		Kind:          events.KindDeliverableAdded,
		ProjectID:     projectID,
		DeliverableID: nd.ID,
		At:            s.now(),
	})

	return &nd, nil
}

// UpdateDeliverableStatus moves the deliverable through the review cycle,
// recording feedback if non-empty.
func (s *ProjectService) UpdateDeliverableStatus(ctx context.Context, projectID string, deliverableID int64, status deliverable.Status, feedback string) (*deliverable.Deliverable, error) {
	s.logger.InfoContext(ctx, "updating deliverable status",
		slog.String("project_id", projectID),
		slog.Int64("deliverable_id", deliverableID),
		slog.String("status", status.String()),
	)
	s.simulateLatency()

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	d := p.Deliverable(deliverableID)
	if d == nil {
		return nil, domain.ErrNotFound
	}

	if !status.IsValid() {
		return nil, &domain.ValidationError{Fields: map[string]string{"status": "invalid: " + string(status)}}
	}
	if !d.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	d.Status = status
	if feedback != "" {
		d.Feedback = feedback
	}
	d.UpdatedAt = s.now().UTC()

	s.hub.Publish(events.Event{
		Kind:          events.KindDeliverableUpdated,
		ProjectID:     projectID,
		DeliverableID: deliverableID,
		At:            s.now(),
	})

	c := *d
	return &c, nil
}

// SubmitDeliverable marks the deliverable submitted with the given file URL.
// Submission succeeds from any prior status so rework can always go back to
// review.
func (s *ProjectService) SubmitDeliverable(ctx context.Context, projectID string, deliverableID int64, fileURL string) (*deliverable.Deliverable, error) {
	s.logger.InfoContext(ctx, "submitting deliverable",
		slog.String("project_id", projectID),
		slog.Int64("deliverable_id", deliverableID),
	)
	s.simulateLatency()

	if strings.TrimSpace(fileURL) == "" {
		return nil, &domain.ValidationError{Fields: map[string]string{"file_url": domain.MsgRequired}}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.findLocked(projectID)
	if p == nil {
		return nil, domain.ErrNotFound
	}
	d := p.Deliverable(deliverableID)
	if d == nil {
		return nil, domain.ErrNotFound
	}

	d.Status = deliverable.StatusSubmitted
	d.FileURL = fileURL
	d.SubmittedAt = s.now().UTC()

	s.hub.Publish(events.Event{
		Kind:          events.KindDeliverableSubmitted,
		ProjectID:     projectID,
		DeliverableID: deliverableID,
		At:            s.now(),
	})

	c := *d
	return &c, nil
}

// findLocked returns a pointer into the collection. Callers hold s.mu.
func (s *ProjectService) findLocked(id string) *project.Project {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return &s.projects[i]
		}
	}
	return nil
}

// teamProjectLocked returns the project owned by teamID, if any. Callers
// hold s.mu.
func (s *ProjectService) teamProjectLocked(teamID string) *project.Project {
	for i := range s.projects {
		if s.projects[i].TeamID == teamID {
			return &s.projects[i]
		}
	}
	return nil
}

// cloneProject copies a project so callers cannot mutate the stored
// deliverable sequence.
func cloneProject(p project.Project) project.Project {
	p.Deliverables = append([]deliverable.Deliverable(nil), p.Deliverables...)
	return p
}

func cloneProjects(ps []project.Project) []project.Project {
	out := make([]project.Project, len(ps))
	for i := range ps {
		out[i] = cloneProject(ps[i])
	}
	return out
}
