package screening

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
)

// MaxCompareFiles bounds the resumes, job description files and job
// description texts of one Compare call, each counted separately.
const MaxCompareFiles = 10

// CompareInput lists the files and texts for an ad hoc resume check.
type CompareInput struct {
	ResumeURLs      []string
	JobDescriptions []string
	JDFileURLs      []string
}

// Compare scores every resume against every job description in one call to
// the scoring service. Results are returned to the recruiter and not stored.
func (s *Service) Compare(ctx context.Context, recruiterID string, in CompareInput) (*scoring.BatchResult, error) {
	if _, err := s.settings(ctx, recruiterID); err != nil {
		return nil, err
	}

	var req scoring.BatchRequest
	for _, jd := range in.JobDescriptions {
		if jd = strings.TrimSpace(jd); jd != "" {
			req.JobDescriptions = append(req.JobDescriptions, jd)
		}
	}
	if len(in.ResumeURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one resume is required", data.ErrInvalid)
	}
	if len(req.JobDescriptions) == 0 && len(in.JDFileURLs) == 0 {
		return nil, fmt.Errorf("%w: at least one job description is required", data.ErrInvalid)
	}
	if len(in.ResumeURLs) > MaxCompareFiles || len(in.JDFileURLs) > MaxCompareFiles ||
		len(req.JobDescriptions) > MaxCompareFiles {
		return nil, fmt.Errorf("%w: at most %d items of each kind", data.ErrInvalid, MaxCompareFiles)
	}

	for _, u := range in.ResumeURLs {
		f, err := s.files.Fetch(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("resume: %w", err)
		}
		req.Resumes = append(req.Resumes, f)
	}
	for _, u := range in.JDFileURLs {
		f, err := s.files.Fetch(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("job description: %w", err)
		}
		req.JobDescriptionFiles = append(req.JobDescriptionFiles, f)
	}

	return s.scorer.CheckBatch(ctx, req)
}
