package main

import (
	v1 "github.com/PaulBabatuyi/jobboard/api/jobboard/v1"
	"github.com/PaulBabatuyi/jobboard/internal/board"
	"github.com/PaulBabatuyi/jobboard/internal/chat"
	"github.com/PaulBabatuyi/jobboard/internal/data"
	"github.com/PaulBabatuyi/jobboard/internal/scoring"
	"github.com/PaulBabatuyi/jobboard/internal/screening"
)

func toProfile(u *data.User) *v1.Profile {
	return &v1.Profile{
		ID:          u.IDHex(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Name:        u.Name,
		Role:        string(u.Role),
		AvatarURL:   u.Avatar(),
		CompanyName: u.CompanyName,
		Bio:         u.Bio,
		Tags:        u.Tags,
		Skills:      u.Skills,
		CreatedAt:   u.CreatedAt,
	}
}

func toProfiles(users []*data.User) []*v1.Profile {
	out := make([]*v1.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, toProfile(u))
	}
	return out
}

func toMessage(m *data.Message) *v1.Message {
	return &v1.Message{
		ID:          m.ID.Hex(),
		ChatID:      m.ChatID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		Content:     m.Content,
		SentAt:      m.SentAt,
	}
}

func toChatListUpdate(chats []chat.Summary) *v1.ChatListUpdate {
	out := &v1.ChatListUpdate{Chats: make([]*v1.ChatSummary, 0, len(chats))}
	for _, c := range chats {
		cs := &v1.ChatSummary{
			ChatID:          c.ChatID,
			OtherUserID:     c.OtherUserID,
			OtherUserName:   c.Counterpart.Name,
			OtherUserAvatar: c.Counterpart.Avatar,
			Participants:    c.Participants,
			UnreadCount:     c.UnreadCount,
			CreatedAt:       c.CreatedAt,
			Timestamp:       c.Timestamp,
		}
		if c.LastMessage != nil {
			cs.LastMessage = &v1.LastMessage{
				Text:     c.LastMessage.Text,
				SenderID: c.LastMessage.SenderID,
				SentAt:   c.LastMessage.SentAt,
			}
		}
		out.Chats = append(out.Chats, cs)
	}
	return out
}

func toJob(j *data.Job) *v1.Job {
	return &v1.Job{
		ID:          j.ID.Hex(),
		RecruiterID: j.RecruiterID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		JDFileURL:   j.JDFileURL,
		JDFileName:  j.JDFileName,
		Tags:        j.Tags,
		CreatedAt:   j.CreatedAt,
	}
}

func toJobs(jobs []*data.Job) []*v1.Job {
	out := make([]*v1.Job, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJob(j))
	}
	return out
}

func toApplication(a *data.Application) *v1.Application {
	return &v1.Application{
		ID:            a.ID.Hex(),
		JobID:         a.JobID,
		RecruiterID:   a.RecruiterID,
		CandidateID:   a.CandidateID,
		CandidateName: a.CandidateName,
		ResumeURL:     a.ResumeURL,
		CoverLetter:   a.CoverLetter,
		Status:        string(a.Status),
		Score:         a.Score,
		Reasoning:     a.Reasoning,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func toApplications(apps []*data.Application) []*v1.Application {
	out := make([]*v1.Application, 0, len(apps))
	for _, a := range apps {
		out = append(out, toApplication(a))
	}
	return out
}

func toSettings(s data.RecruiterSettings) *v1.Settings {
	return &v1.Settings{
		CutoffScore:        s.CutoffScore,
		AutoStatus:         string(s.AutoStatus),
		ShortlistedResetAt: s.ShortlistedResetAt,
	}
}

func toDashboard(d *board.Dashboard) *v1.Dashboard {
	return &v1.Dashboard{
		Role: string(d.Role),
		Stats: v1.DashboardStats{
			TotalJobs:         d.Stats.TotalJobs,
			JobsApplied:       d.Stats.JobsApplied,
			TotalApplications: d.Stats.TotalApplications,
			Pending:           d.Stats.Pending,
			Shortlisted:       d.Stats.Shortlisted,
			Rejected:          d.Stats.Rejected,
		},
		Jobs:               toJobs(d.Jobs),
		RecentApplications: toApplications(d.RecentApplications),
		ShortlistedResetAt: d.ShortlistedResetAt,
	}
}

func toScoreReport(r *screening.Report) *v1.ScoreAllApplicationsResponse {
	out := &v1.ScoreAllApplicationsResponse{
		Scored:  r.Scored,
		Failed:  r.Failed,
		Results: make([]*v1.ScoreOutcome, 0, len(r.Outcomes)),
	}
	for _, o := range r.Outcomes {
		res := &v1.ScoreOutcome{ApplicationID: o.ApplicationID, Score: o.Score, Status: string(o.Status)}
		if o.Err != nil {
			res.Error = o.Err.Error()
		}
		out.Results = append(out.Results, res)
	}
	return out
}

func toCompareResponse(r *scoring.BatchResult) *v1.CompareResumesResponse {
	out := &v1.CompareResumesResponse{
		Results:              make([]*v1.ResumeMatch, 0, len(r.Results)),
		TotalProcessed:       r.TotalProcessed,
		ResumesCount:         r.ResumesCount,
		JobDescriptionsCount: r.JobDescriptionsCount,
	}
	for _, m := range r.Results {
		out.Results = append(out.Results, &v1.ResumeMatch{
			ResumeName:     m.ResumeName,
			JobDescription: m.JobDescription,
			Score:          m.Score,
			Reasoning:      m.Reasoning,
			ChunksUsed:     m.ChunksUsed,
		})
	}
	return out
}
