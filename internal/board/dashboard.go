package board

import (
	"context"
	"slices"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

const (
	recentJobsLimit         = 3
	recentApplicationsLimit = 5
)

type Stats struct {
	TotalJobs         int
	JobsApplied       int
	TotalApplications int
	Pending           int
	Shortlisted       int
	Rejected          int
}

// Dashboard is the landing page summary for a user. For recruiters Jobs holds
// their most recent postings; for candidates it holds recommended jobs.
type Dashboard struct {
	Role               data.Role
	Stats              Stats
	Jobs               []*data.Job
	RecentApplications []*data.Application
	ShortlistedResetAt *time.Time
}

// Dashboard builds the dashboard for userID.
func (s *Service) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	var resetAt *time.Time
	if user.Settings != nil {
		resetAt = user.Settings.ShortlistedResetAt
	}

	apps, err := s.apps.ListApplications(ctx, filterFor(user))
	if err != nil {
		return nil, err
	}

	if user.Role == data.RoleRecruiter {
		jobs, err := s.jobs.ListJobs(ctx, userID)
		if err != nil {
			return nil, err
		}
		d := RecruiterDashboard(jobs, apps, resetAt)
		return &d, nil
	}

	jobs, err := s.jobs.ListJobs(ctx, "")
	if err != nil {
		return nil, err
	}
	d := CandidateDashboard(user.Tags, jobs, apps, resetAt)
	return &d, nil
}

// RecruiterDashboard summarises a recruiter's jobs and received applications.
// Both slices are expected newest first.
func RecruiterDashboard(jobs []*data.Job, apps []*data.Application, resetAt *time.Time) Dashboard {
	return Dashboard{
		Role: data.RoleRecruiter,
		Stats: Stats{
			TotalJobs:         len(jobs),
			TotalApplications: len(apps),
			Pending:           countStatus(apps, data.StatusPending),
			Shortlisted:       len(shortlistedSince(apps, resetAt)),
			Rejected:          countStatus(apps, data.StatusRejected),
		},
		Jobs:               head(jobs, recentJobsLimit),
		RecentApplications: head(apps, recentApplicationsLimit),
		ShortlistedResetAt: resetAt,
	}
}

// CandidateDashboard summarises a candidate's applications. Shortlisted
// counts distinct jobs, and jobs sharing a tag with the candidate are
// recommended.
func CandidateDashboard(tags []string, jobs []*data.Job, apps []*data.Application, resetAt *time.Time) Dashboard {
	applied := make(map[string]bool)
	for _, a := range apps {
		applied[a.JobID] = true
	}
	shortlisted := make(map[string]bool)
	for _, a := range shortlistedSince(apps, resetAt) {
		shortlisted[a.JobID] = true
	}

	return Dashboard{
		Role: data.RoleCandidate,
		Stats: Stats{
			JobsApplied:       len(applied),
			TotalApplications: len(apps),
			Pending:           countStatus(apps, data.StatusPending),
			Shortlisted:       len(shortlisted),
			Rejected:          countStatus(apps, data.StatusRejected),
		},
		Jobs:               Recommend(tags, jobs, recentJobsLimit),
		RecentApplications: head(apps, recentApplicationsLimit),
		ShortlistedResetAt: resetAt,
	}
}

// Recommend returns up to limit jobs with at least one tag in common with tags.
func Recommend(tags []string, jobs []*data.Job, limit int) []*data.Job {
	var out []*data.Job
	for _, j := range jobs {
		if len(out) == limit {
			break
		}
		if slices.ContainsFunc(j.Tags, func(t string) bool { return slices.Contains(tags, t) }) {
			out = append(out, j)
		}
	}
	return out
}

// shortlistedSince returns shortlisted or hired applications, limited to
// those updated after resetAt when a reset happened.
func shortlistedSince(apps []*data.Application, resetAt *time.Time) []*data.Application {
	var out []*data.Application
	for _, a := range apps {
		if a.Status != data.StatusShortlisted && a.Status != data.StatusHired {
			continue
		}
		if resetAt != nil && !a.UpdatedAt.After(*resetAt) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func countStatus(apps []*data.Application, status data.Status) int {
	n := 0
	for _, a := range apps {
		if a.Status == status {
			n++
		}
	}
	return n
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}
