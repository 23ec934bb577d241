package main

import (
	"time"

	"github.com/edulab/projhub/internal/domain/deliverable"
	"github.com/edulab/projhub/internal/domain/project"
	"github.com/edulab/projhub/internal/domain/team"
	"github.com/edulab/projhub/internal/domain/user"
)

// seedData holds the demo fixtures loaded when store.seed is enabled: one
// student already on a mentored team with an in-progress project, one empty
// team, and an admin outside any team.
type seedData struct {
	users    []user.User
	teams    []team.Team
	projects []project.Project
}

func newSeedData(now time.Time) seedData {
	return seedData{
		users: []user.User{
			{ID: "u1", Email: "alex@university.edu", Name: "Alex Rivera", Role: user.RoleStudent, CreatedAt: now},
			{ID: "u2", Email: "sam@university.edu", Name: "Sam Chen", Role: user.RoleMentor, CreatedAt: now},
			{ID: "u3", Email: "jordan@university.edu", Name: "Jordan Okafor", Role: user.RoleAdmin, CreatedAt: now},
		},
		teams: []team.Team{
			{
				ID:          "t1",
				Name:        "Team Alpha",
				Description: "Capstone group working on campus tooling",
				MemberIDs:   []string{"u1"},
				MentorID:    "u2",
				CreatedAt:   now,
			},
			{
				ID:          "t2",
				Name:        "Team Beta",
				Description: "Open group looking for members",
				MemberIDs:   []string{},
				CreatedAt:   now,
			},
		},
		projects: []project.Project{
			{
				ID:          "p1",
				Title:       "Campus Navigator",
				Description: "Indoor navigation app for the engineering building",
				TeamID:      "t1",
				Status:      project.StatusInProgress,
				Deliverables: []deliverable.Deliverable{
					{
						ID:          1,
						Title:       "Project proposal",
						Description: "Scope, milestones, and team roles",
						DueDate:     now.Add(7 * 24 * time.Hour),
						Status:      deliverable.StatusSubmitted,
						FileURL:     "https://files.university.edu/p1/proposal.pdf",
						SubmittedAt: now,
						UpdatedAt:   now,
					},
					{
						ID:          2,
						Title:       "Architecture document",
						Description: "Component diagram and data flow",
						DueDate:     now.Add(21 * 24 * time.Hour),
						Status:      deliverable.StatusPending,
					},
				},
				CreatedAt: now,
			},
		},
	}
}
