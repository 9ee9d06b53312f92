// Package screening scores job applications against their job description
// and moves them through the pipeline based on the recruiter's cutoff.
package screening

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
	"golang.org/x/time/rate"
)

// MaxScore is the scale every application is scored on.
const MaxScore = 100

// DefaultInterval paces ScoreAll to one scoring call per second.
const DefaultInterval = time.Second

type Applications interface {
	GetApplication(ctx context.Context, id string) (*data.Application, error)
	ListApplications(ctx context.Context, f data.ApplicationFilter) ([]*data.Application, error)
	UpdateScore(ctx context.Context, id string, score float64, reasoning string, status data.Status) (*data.Application, error)
}

type Jobs interface {
	GetJob(ctx context.Context, id string) (*data.Job, error)
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (*data.User, error)
}

type Scorer interface {
	CheckSingle(ctx context.Context, req scoring.SingleRequest) (*scoring.Result, error)
	CheckBatch(ctx context.Context, req scoring.BatchRequest) (*scoring.BatchResult, error)
}

type Files interface {
	Fetch(ctx context.Context, url string) (scoring.File, error)
}

// Service runs screening for a recruiter's applications.
type Service struct {
	apps   Applications
	jobs   Jobs
	users  Users
	scorer Scorer
	files  Files

	Interval time.Duration
}

func NewService(apps Applications, jobs Jobs, users Users, scorer Scorer, files Files) *Service {
	return &Service{
		apps:     apps,
		jobs:     jobs,
		users:    users,
		scorer:   scorer,
		files:    files,
		Interval: DefaultInterval,
	}
}

// DecideStatus maps a score to the recruiter's auto status when it reaches
// the cutoff, and to failed otherwise.
func DecideStatus(score float64, settings data.RecruiterSettings) data.Status {
	if score >= float64(settings.CutoffScore) {
		return settings.AutoStatus
	}
	return data.StatusFailed
}

// Score scores a single application owned by recruiterID and persists the result.
func (s *Service) Score(ctx context.Context, recruiterID, appID string) (*data.Application, error) {
	settings, err := s.settings(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	app, err := s.apps.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app.RecruiterID != recruiterID {
		return nil, fmt.Errorf("application %s: %w", appID, data.ErrForbidden)
	}

	job, err := s.jobs.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	return s.score(ctx, app, job, settings)
}

// Outcome is the result of scoring one application in a batch.
type Outcome struct {
	ApplicationID string
	Score         float64
	Status        data.Status
	Err           error
}

// Report summarises a ScoreAll run.
type Report struct {
	Scored   int
	Failed   int
	Outcomes []Outcome
}

// ScoreAll scores every unscored application of the recruiter that has both a
// resume and a job description. Calls are made one at a time, paced by
// Interval; a failed item is recorded and the loop moves on.
func (s *Service) ScoreAll(ctx context.Context, recruiterID string) (*Report, error) {
	settings, err := s.settings(ctx, recruiterID)
	if err != nil {
		return nil, err
	}

	apps, err := s.apps.ListApplications(ctx, data.ApplicationFilter{RecruiterID: recruiterID})
	if err != nil {
		return nil, err
	}

	type pending struct {
		app *data.Application
		job *data.Job
	}
	jobs := make(map[string]*data.Job)
	var queue []pending
	for _, app := range apps {
		if app.ResumeURL == "" || app.Score != nil {
			continue
		}
		job, ok := jobs[app.JobID]
		if !ok {
			job, err = s.jobs.GetJob(ctx, app.JobID)
			if err != nil && !errors.Is(err, data.ErrNotFound) {
				return nil, err
			}
			jobs[app.JobID] = job
		}
		if job == nil || !job.HasDescription() {
			continue
		}
		queue = append(queue, pending{app: app, job: job})
	}

	report := &Report{}
	if len(queue) == 0 {
		return report, nil
	}

	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	limiter := rate.NewLimiter(rate.Every(interval), 1)

	for _, p := range queue {
		if err := limiter.Wait(ctx); err != nil {
			return report, err
		}

		id := p.app.ID.Hex()
		updated, err := s.score(ctx, p.app, p.job, settings)
		if err != nil {
			log.Printf("score application %s: %v", id, err)
			report.Failed++
			report.Outcomes = append(report.Outcomes, Outcome{ApplicationID: id, Err: err})
			continue
		}
		report.Scored++
		report.Outcomes = append(report.Outcomes, Outcome{
			ApplicationID: id,
			Score:         *updated.Score,
			Status:        updated.Status,
		})
	}

	log.Printf("scored %d applications for %s (%d failed)", report.Scored, recruiterID, report.Failed)
	return report, nil
}

func (s *Service) settings(ctx context.Context, recruiterID string) (data.RecruiterSettings, error) {
	recruiter, err := s.users.GetUserByID(ctx, recruiterID)
	if err != nil {
		return data.RecruiterSettings{}, err
	}
	if recruiter.Role != data.RoleRecruiter {
		return data.RecruiterSettings{}, fmt.Errorf("only recruiters can score applications: %w", data.ErrForbidden)
	}
	return recruiter.ScreeningSettings(), nil
}

func (s *Service) score(ctx context.Context, app *data.Application, job *data.Job, settings data.RecruiterSettings) (*data.Application, error) {
	if app.ResumeURL == "" {
		return nil, fmt.Errorf("%w: application has no resume", data.ErrInvalid)
	}
	if !job.HasDescription() {
		return nil, fmt.Errorf("%w: job has no description", data.ErrInvalid)
	}

	resume, err := s.files.Fetch(ctx, app.ResumeURL)
	if err != nil {
		return nil, fmt.Errorf("resume: %w", err)
	}

	req := scoring.SingleRequest{
		Resume:      resume,
		MaxScore:    MaxScore,
		CutoffScore: settings.CutoffScore,
	}
	if job.JDFileURL != "" {
		jd, err := s.files.Fetch(ctx, job.JDFileURL)
		if err != nil {
			return nil, fmt.Errorf("job description: %w", err)
		}
		if job.JDFileName != "" {
			jd.Name = job.JDFileName
		}
		req.JobDescriptionFile = &jd
	} else {
		req.JobDescription = job.Description
	}

	result, err := s.scorer.CheckSingle(ctx, req)
	if err != nil {
		return nil, err
	}

	status := DecideStatus(result.Score, settings)
	return s.apps.UpdateScore(ctx, app.ID.Hex(), result.Score, result.Reasoning, status)
}
