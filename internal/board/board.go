// Package board implements the job board: postings, applications, recruiter
// screening settings and dashboards.
package board

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
)

type Jobs interface {
	CreateJob(ctx context.Context, j *data.Job) (*data.Job, error)
	GetJob(ctx context.Context, id string) (*data.Job, error)
	ListJobs(ctx context.Context, recruiterID string) ([]*data.Job, error)
}

type Applications interface {
	CreateApplication(ctx context.Context, a *data.Application) (*data.Application, error)
	GetApplication(ctx context.Context, id string) (*data.Application, error)
	ListApplications(ctx context.Context, f data.ApplicationFilter) ([]*data.Application, error)
	UpdateStatus(ctx context.Context, id string, status data.Status) (*data.Application, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (*data.User, error)
	UpdateSettings(ctx context.Context, id string, cutoff int, auto data.Status) (*data.User, error)
	SetShortlistedReset(ctx context.Context, id string, at time.Time) (*data.User, error)
}

// FileChecker vets an uploaded file URL before it is stored for later download.
type FileChecker interface {
	Check(rawURL string) error
}

type Service struct {
	jobs  Jobs
	apps  Applications
	users Users
	now   func() time.Time

	// Files, when set, rejects resume and job description URLs the server
	// will not download.
	Files FileChecker
}

func NewService(jobs Jobs, apps Applications, users Users) *Service {
	return &Service{jobs: jobs, apps: apps, users: users, now: time.Now}
}

// JobInput is a new job posting.
type JobInput struct {
	Title       string
	Company     string
	Location    string
	Description string
	JDFileURL   string
	JDFileName  string
	Tags        []string
}

// PostJob publishes a job for recruiterID. A posting needs a title and either
// a description or an uploaded job description file.
func (s *Service) PostJob(ctx context.Context, recruiterID string, in JobInput) (*data.Job, error) {
	recruiter, err := s.requireRole(ctx, recruiterID, data.RoleRecruiter)
	if err != nil {
		return nil, err
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", data.ErrInvalid)
	}
	if in.Description == "" && in.JDFileURL == "" {
		return nil, fmt.Errorf("%w: description or job description file is required", data.ErrInvalid)
	}
	if strings.HasPrefix(in.JDFileURL, "blob:") {
		return nil, fmt.Errorf("%w: job description file was not uploaded", data.ErrInvalid)
	}
	if in.JDFileURL != "" {
		if err := s.checkFile(in.JDFileURL); err != nil {
			return nil, err
		}
	}

	company := strings.TrimSpace(in.Company)
	if company == "" {
		company = recruiter.CompanyName
	}

	return s.jobs.CreateJob(ctx, &data.Job{
		RecruiterID: recruiterID,
		Title:       in.Title,
		Company:     company,
		Location:    strings.TrimSpace(in.Location),
		Description: in.Description,
		JDFileURL:   in.JDFileURL,
		JDFileName:  in.JDFileName,
		Tags:        cleanTags(in.Tags),
	})
}

// ListJobs returns the recruiter's jobs, or every job when recruiterID is empty.
func (s *Service) ListJobs(ctx context.Context, recruiterID string) ([]*data.Job, error) {
	return s.jobs.ListJobs(ctx, recruiterID)
}

// Apply files candidateID's application to jobID in the pending state.
func (s *Service) Apply(ctx context.Context, candidateID, jobID, resumeURL, coverLetter string) (*data.Application, error) {
	candidate, err := s.requireRole(ctx, candidateID, data.RoleCandidate)
	if err != nil {
		return nil, err
	}

	resumeURL = strings.TrimSpace(resumeURL)
	if resumeURL == "" {
		return nil, fmt.Errorf("%w: resume is required", data.ErrInvalid)
	}
	if strings.HasPrefix(resumeURL, "blob:") {
		return nil, fmt.Errorf("%w: resume was not uploaded", data.ErrInvalid)
	}
	if err := s.checkFile(resumeURL); err != nil {
		return nil, err
	}

	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	return s.apps.CreateApplication(ctx, &data.Application{
		JobID:         job.ID.Hex(),
		RecruiterID:   job.RecruiterID,
		CandidateID:   candidateID,
		CandidateName: candidate.Label(),
		ResumeURL:     resumeURL,
		CoverLetter:   strings.TrimSpace(coverLetter),
		Status:        data.StatusPending,
	})
}

func (s *Service) checkFile(rawURL string) error {
	if s.Files == nil {
		return nil
	}
	return s.Files.Check(rawURL)
}

// ListApplications returns the applications visible to viewerID: those
// received by a recruiter or those sent by a candidate.
func (s *Service) ListApplications(ctx context.Context, viewerID string) ([]*data.Application, error) {
	viewer, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	return s.apps.ListApplications(ctx, filterFor(viewer))
}

// UpdateStatus moves an application owned by recruiterID to status.
func (s *Service) UpdateStatus(ctx context.Context, recruiterID, appID string, status data.Status) (*data.Application, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", data.ErrInvalid, status)
	}
	app, err := s.apps.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.RecruiterID != recruiterID {
		return nil, fmt.Errorf("application %s: %w", appID, data.ErrForbidden)
	}
	return s.apps.UpdateStatus(ctx, appID, status)
}

// Settings returns the recruiter's screening settings with defaults applied.
func (s *Service) Settings(ctx context.Context, recruiterID string) (data.RecruiterSettings, error) {
	recruiter, err := s.requireRole(ctx, recruiterID, data.RoleRecruiter)
	if err != nil {
		return data.RecruiterSettings{}, err
	}
	return recruiter.ScreeningSettings(), nil
}

// UpdateSettings stores a new cutoff score (0-100) and auto status.
func (s *Service) UpdateSettings(ctx context.Context, recruiterID string, cutoff int, auto data.Status) (data.RecruiterSettings, error) {
	if cutoff < 0 || cutoff > 100 {
		return data.RecruiterSettings{}, fmt.Errorf("%w: cutoff score must be between 0 and 100", data.ErrInvalid)
	}
	if !auto.Valid() {
		return data.RecruiterSettings{}, fmt.Errorf("%w: unknown status %q", data.ErrInvalid, auto)
	}
	if _, err := s.requireRole(ctx, recruiterID, data.RoleRecruiter); err != nil {
		return data.RecruiterSettings{}, err
	}

	updated, err := s.users.UpdateSettings(ctx, recruiterID, cutoff, auto)
	if err != nil {
		return data.RecruiterSettings{}, err
	}
	return updated.ScreeningSettings(), nil
}

// ResetShortlisted restarts the dashboard's shortlisted counter from now.
func (s *Service) ResetShortlisted(ctx context.Context, userID string) (time.Time, error) {
	at := s.now().UTC()
	if _, err := s.users.SetShortlistedReset(ctx, userID, at); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

func (s *Service) requireRole(ctx context.Context, userID string, role data.Role) (*data.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, fmt.Errorf("%s only: %w", role, data.ErrForbidden)
	}
	return user, nil
}

func filterFor(u *data.User) data.ApplicationFilter {
	if u.Role == data.RoleRecruiter {
		return data.ApplicationFilter{RecruiterID: u.IDHex()}
	}
	return data.ApplicationFilter{CandidateID: u.IDHex()}
}

func cleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
