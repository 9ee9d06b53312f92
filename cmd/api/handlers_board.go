package main

import (
	"context"
	"log"

	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/board"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/screening"
)

// PostJob publishes a job for the calling recruiter.
func (s *Server) PostJob(ctx context.Context, req *v1.PostJobRequest) (*v1.Job, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.board.PostJob(ctx, caller.UserID, board.JobInput{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: req.Description,
		JDFileURL:   req.JDFileURL,
		JDFileName:  req.JDFileName,
		Tags:        req.Tags,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toJob(job), nil
}

// ListJobs lists one recruiter's jobs, or all jobs.
func (s *Server) ListJobs(ctx context.Context, req *v1.ListJobsRequest) (*v1.ListJobsResponse, error) {
	if _, err := callerFrom(ctx); err != nil {
		return nil, err
	}
	jobs, err := s.board.ListJobs(ctx, req.RecruiterID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.ListJobsResponse{Jobs: toJobs(jobs)}, nil
}

// Apply files the calling candidate's application to a job.
func (s *Server) Apply(ctx context.Context, req *v1.ApplyRequest) (*v1.Application, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.board.Apply(ctx, caller.UserID, req.JobID, req.ResumeURL, req.CoverLetter)
	if err != nil {
		return nil, toStatus(err)
	}
	return toApplication(app), nil
}

// ListApplications lists applications received (recruiter) or sent (candidate).
func (s *Server) ListApplications(ctx context.Context, _ *v1.ListApplicationsRequest) (*v1.ListApplicationsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	apps, err := s.board.ListApplications(ctx, caller.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.ListApplicationsResponse{Applications: toApplications(apps)}, nil
}

// UpdateApplicationStatus moves one of the recruiter's applications to a new status.
func (s *Server) UpdateApplicationStatus(ctx context.Context, req *v1.UpdateApplicationStatusRequest) (*v1.Application, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.board.UpdateStatus(ctx, caller.UserID, req.ApplicationID, data.Status(req.Status))
	if err != nil {
		return nil, toStatus(err)
	}
	return toApplication(app), nil
}

// ScoreApplication runs the resume scorer on a single application.
func (s *Server) ScoreApplication(ctx context.Context, req *v1.ScoreApplicationRequest) (*v1.Application, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	app, err := s.screening.Score(ctx, caller.UserID, req.ApplicationID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toApplication(app), nil
}

// ScoreAllApplications scores every unscored application of the recruiter.
func (s *Server) ScoreAllApplications(ctx context.Context, _ *v1.ScoreAllApplicationsRequest) (*v1.ScoreAllApplicationsResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	report, err := s.screening.ScoreAll(ctx, caller.UserID)
	if err != nil {
		if report != nil {
			log.Printf("score all for %s interrupted after %d scored: %v", caller.UserID, report.Scored, err)
		}
		return nil, toStatus(err)
	}
	return toScoreReport(report), nil
}

// CompareResumes scores a set of resumes against a set of job descriptions
// without touching any application.
func (s *Server) CompareResumes(ctx context.Context, req *v1.CompareResumesRequest) (*v1.CompareResumesResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	res, err := s.screening.Compare(ctx, caller.UserID, screening.CompareInput{
		ResumeURLs:      req.ResumeURLs,
		JobDescriptions: req.JobDescriptions,
		JDFileURLs:      req.JDFileURLs,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toCompareResponse(res), nil
}

// GetSettings returns the recruiter's screening settings.
func (s *Server) GetSettings(ctx context.Context, _ *v1.GetSettingsRequest) (*v1.Settings, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.board.Settings(ctx, caller.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toSettings(settings), nil
}

// UpdateSettings changes the recruiter's cutoff score and auto status.
func (s *Server) UpdateSettings(ctx context.Context, req *v1.UpdateSettingsRequest) (*v1.Settings, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := s.board.UpdateSettings(ctx, caller.UserID, req.CutoffScore, data.Status(req.AutoStatus))
	if err != nil {
		return nil, toStatus(err)
	}
	return toSettings(settings), nil
}

// GetDashboard returns the caller's dashboard.
func (s *Server) GetDashboard(ctx context.Context, _ *v1.GetDashboardRequest) (*v1.Dashboard, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	d, err := s.board.Dashboard(ctx, caller.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return toDashboard(d), nil
}

// ResetShortlisted restarts the caller's shortlisted counter.
func (s *Server) ResetShortlisted(ctx context.Context, _ *v1.ResetShortlistedRequest) (*v1.ResetShortlistedResponse, error) {
	caller, err := callerFrom(ctx)
	if err != nil {
		return nil, err
	}
	at, err := s.board.ResetShortlisted(ctx, caller.UserID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &v1.ResetShortlistedResponse{ResetAt: at}, nil
}
