package board

import (
	"context"
	"slices"
	"time"

	"github.com/PaulBabatuyi/jobboard/internal/data"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type memJobs struct {
	jobs []*data.Job // newest first
}

func (m *memJobs) CreateJob(_ context.Context, j *data.Job) (*data.Job, error) {
	j.ID = bson.NewObjectID()
	m.jobs = append([]*data.Job{j}, m.jobs...)
	return j, nil
}

func (m *memJobs) GetJob(_ context.Context, id string) (*data.Job, error) {
	for _, j := range m.jobs {
		if j.ID.Hex() == id {
			return j, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *memJobs) ListJobs(_ context.Context, recruiterID string) ([]*data.Job, error) {
	var out []*data.Job
	for _, j := range m.jobs {
		if recruiterID == "" || j.RecruiterID == recruiterID {
			out = append(out, j)
		}
	}
	return out, nil
}

type memApps struct {
	apps []*data.Application
}

func (m *memApps) CreateApplication(_ context.Context, a *data.Application) (*data.Application, error) {
	for _, existing := range m.apps {
		if existing.JobID == a.JobID && existing.CandidateID == a.CandidateID {
			return nil, data.ErrDuplicate
		}
	}
	a.ID = bson.NewObjectID()
	m.apps = append([]*data.Application{a}, m.apps...)
	return a, nil
}

func (m *memApps) GetApplication(_ context.Context, id string) (*data.Application, error) {
	for _, a := range m.apps {
		if a.ID.Hex() == id {
			return a, nil
		}
	}
	return nil, data.ErrNotFound
}

func (m *memApps) ListApplications(_ context.Context, f data.ApplicationFilter) ([]*data.Application, error) {
	var out []*data.Application
	for _, a := range m.apps {
		if f.RecruiterID != "" && a.RecruiterID != f.RecruiterID {
			continue
		}
		if f.CandidateID != "" && a.CandidateID != f.CandidateID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memApps) UpdateStatus(ctx context.Context, id string, status data.Status) (*data.Application, error) {
	a, err := m.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Status = status
	return a, nil
}

type memUsers struct {
	users map[string]*data.User
}

func newMemUsers(users ...*data.User) *memUsers {
	m := &memUsers{users: map[string]*data.User{}}
	for _, u := range users {
		u.ID = bson.NewObjectID()
		m.users[u.ID.Hex()] = u
	}
	return m
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*data.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) UpdateSettings(_ context.Context, id string, cutoff int, auto data.Status) (*data.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	if u.Settings == nil {
		u.Settings = &data.RecruiterSettings{}
	}
	u.Settings.CutoffScore, u.Settings.AutoStatus = cutoff, auto
	return u, nil
}

func (m *memUsers) SetShortlistedReset(_ context.Context, id string, at time.Time) (*data.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, data.ErrNotFound
	}
	if u.Settings == nil {
		u.Settings = &data.RecruiterSettings{}
	}
	u.Settings.ShortlistedResetAt = &at
	return u, nil
}

func jobTitles(jobs []*data.Job) []string {
	var out []string
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	slices.Sort(out)
	return out
}
