package board

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecruiterDashboard(t *testing.T) {
	reset := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	before, after := reset.Add(-time.Hour), reset.Add(time.Hour)

	var jobs []*data.Job
	for i := 0; i < 5; i++ {
		jobs = append(jobs, &data.Job{Title: fmt.Sprintf("job-%d", i)})
	}
	apps := []*data.Application{
		{Status: data.StatusPending},
		{Status: data.StatusPending},
		{Status: data.StatusShortlisted, UpdatedAt: after},
		{Status: data.StatusHired, UpdatedAt: after},
		{Status: data.StatusShortlisted, UpdatedAt: before},
		{Status: data.StatusRejected},
		{Status: data.StatusFailed},
	}

	d := RecruiterDashboard(jobs, apps, nil)
	assert.Equal(t, Stats{TotalJobs: 5, TotalApplications: 7, Pending: 2, Shortlisted: 3, Rejected: 1}, d.Stats)
	assert.Len(t, d.Jobs, 3)
	assert.Equal(t, "job-0", d.Jobs[0].Title)
	assert.Len(t, d.RecentApplications, 5)

	d = RecruiterDashboard(jobs, apps, &reset)
	assert.Equal(t, 2, d.Stats.Shortlisted)
}

func TestCandidateDashboard(t *testing.T) {
	apps := []*data.Application{
		{JobID: "a", Status: data.StatusShortlisted},
		{JobID: "a", Status: data.StatusHired},
		{JobID: "b", Status: data.StatusPending},
		{JobID: "c", Status: data.StatusRejected},
	}
	jobs := []*data.Job{
		{Title: "rust", Tags: []string{"rust"}},
		{Title: "go-1", Tags: []string{"go"}},
		{Title: "go-2", Tags: []string{"mongo", "go"}},
		{Title: "mongo", Tags: []string{"mongo"}},
		{Title: "go-3", Tags: []string{"go"}},
		{Title: "untagged"},
	}

	d := CandidateDashboard([]string{"go", "mongo"}, jobs, apps, nil)
	assert.Equal(t, Stats{JobsApplied: 3, TotalApplications: 4, Pending: 1, Shortlisted: 1, Rejected: 1}, d.Stats)
	assert.Equal(t, []string{"go-1", "go-2", "mongo"}, jobTitles(d.Jobs))

	assert.Empty(t, CandidateDashboard(nil, jobs, apps, nil).Jobs)
}

func TestDashboard_Service(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	job, err := f.svc.PostJob(ctx, f.recruiter.IDHex(), JobInput{Title: "Backend", Description: "Go", Tags: []string{"go"}})
	require.NoError(t, err)
	_, err = f.svc.Apply(ctx, f.candidate.IDHex(), job.ID.Hex(), "https://files/cv.pdf", "")
	require.NoError(t, err)

	d, err := f.svc.Dashboard(ctx, f.recruiter.IDHex())
	require.NoError(t, err)
	assert.Equal(t, data.RoleRecruiter, d.Role)
	assert.Equal(t, 1, d.Stats.TotalJobs)
	assert.Equal(t, 1, d.Stats.Pending)

	d, err = f.svc.Dashboard(ctx, f.candidate.IDHex())
	require.NoError(t, err)
	assert.Equal(t, data.RoleCandidate, d.Role)
	assert.Equal(t, 1, d.Stats.JobsApplied)
	require.Len(t, d.Jobs, 1)
	assert.Equal(t, "Backend", d.Jobs[0].Title)
}
