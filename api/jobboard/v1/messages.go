package jobboardv1

import "time"

type Empty struct{}

// Auth

type RegisterRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

func (r *RegisterRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) GetEmail() string {
	if r == nil {
		return ""
	}
	return r.Email
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *Profile  `json:"user"`
}

// Profiles

type Profile struct {
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"display_name"`
	Name        string    `json:"name,omitempty"`
	Role        string    `json:"role"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Skills      []string  `json:"skills,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GetProfileRequest struct {
	// UserID defaults to the caller.
	UserID string `json:"user_id,omitempty"`
}

// UpdateProfileRequest changes only the fields that are set.
type UpdateProfileRequest struct {
	DisplayName     *string  `json:"display_name,omitempty"`
	Name            *string  `json:"name,omitempty"`
	ProfileImageURL *string  `json:"profile_image_url,omitempty"`
	CompanyName     *string  `json:"company_name,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	Skills          []string `json:"skills,omitempty"`
}

type SearchProfilesRequest struct {
	Query string `json:"query"`
}

type SearchProfilesResponse struct {
	Profiles []*Profile `json:"profiles"`
}

// Chats

type StartChatRequest struct {
	RecipientID string `json:"recipient_id"`
}

type StartChatResponse struct {
	ChatID string `json:"chat_id"`
}

type SendMessageRequest struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}

type Message struct {
	ID          string    `json:"id"`
	ChatID      string    `json:"chat_id"`
	SenderID    string    `json:"sender_id"`
	RecipientID string    `json:"recipient_id"`
	Content     string    `json:"content"`
	SentAt      time.Time `json:"sent_at"`
}

type MarkChatReadRequest struct {
	ChatID string `json:"chat_id"`
}

type GetHistoryRequest struct {
	ChatID string `json:"chat_id"`
	Limit  int64  `json:"limit,omitempty"`
}

type WatchChatsRequest struct{}

type LastMessage struct {
	Text     string    `json:"text"`
	SenderID string    `json:"sender_id"`
	SentAt   time.Time `json:"sent_at"`
}

type ChatSummary struct {
	ChatID          string       `json:"chat_id"`
	OtherUserID     string       `json:"other_user_id"`
	OtherUserName   string       `json:"other_user_name"`
	OtherUserAvatar string       `json:"other_user_avatar,omitempty"`
	Participants    []string     `json:"participants"`
	LastMessage     *LastMessage `json:"last_message,omitempty"`
	UnreadCount     int          `json:"unread_count"`
	CreatedAt       time.Time    `json:"created_at"`
	Timestamp       time.Time    `json:"timestamp"`
}

// ChatListUpdate is a full snapshot of the caller's chat list.
type ChatListUpdate struct {
	Chats []*ChatSummary `json:"chats"`
}

type SearchUsersRequest struct {
	Query string `json:"query"`
}

type SearchUsersResponse struct {
	Query string     `json:"query"`
	Users []*Profile `json:"users"`
}

// Jobs and applications

type Job struct {
	ID          string    `json:"id"`
	RecruiterID string    `json:"recruiter_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
	JDFileURL   string    `json:"jd_file_url,omitempty"`
	JDFileName  string    `json:"jd_file_name,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type PostJobRequest struct {
	Title       string   `json:"title"`
	Company     string   `json:"company,omitempty"`
	Location    string   `json:"location,omitempty"`
	Description string   `json:"description,omitempty"`
	JDFileURL   string   `json:"jd_file_url,omitempty"`
	JDFileName  string   `json:"jd_file_name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

type ListJobsRequest struct {
	// RecruiterID filters by recruiter; empty lists every job.
	RecruiterID string `json:"recruiter_id,omitempty"`
}

type ListJobsResponse struct {
	Jobs []*Job `json:"jobs"`
}

type Application struct {
	ID            string    `json:"id"`
	JobID         string    `json:"job_id"`
	RecruiterID   string    `json:"recruiter_id"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	ResumeURL     string    `json:"resume_url"`
	CoverLetter   string    `json:"cover_letter,omitempty"`
	Status        string    `json:"status"`
	Score         *float64  `json:"score,omitempty"`
	Reasoning     string    `json:"reasoning,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ApplyRequest struct {
	JobID       string `json:"job_id"`
	ResumeURL   string `json:"resume_url"`
	CoverLetter string `json:"cover_letter,omitempty"`
}

type ListApplicationsRequest struct{}

type ListApplicationsResponse struct {
	Applications []*Application `json:"applications"`
}

type UpdateApplicationStatusRequest struct {
	ApplicationID string `json:"application_id"`
	Status        string `json:"status"`
}

type ScoreApplicationRequest struct {
	ApplicationID string `json:"application_id"`
}

type ScoreAllApplicationsRequest struct{}

type ScoreOutcome struct {
	ApplicationID string  `json:"application_id"`
	Score         float64 `json:"score,omitempty"`
	Status        string  `json:"status,omitempty"`
	Error         string  `json:"error,omitempty"`
}

type ScoreAllApplicationsResponse struct {
	Scored  int             `json:"scored"`
	Failed  int             `json:"failed"`
	Results []*ScoreOutcome `json:"results"`
}

type CompareResumesRequest struct {
	ResumeURLs      []string `json:"resume_urls"`
	JobDescriptions []string `json:"job_descriptions,omitempty"`
	JDFileURLs      []string `json:"jd_file_urls,omitempty"`
}

type ResumeMatch struct {
	ResumeName     string  `json:"resume_name"`
	JobDescription string  `json:"job_description,omitempty"`
	Score          float64 `json:"score"`
	Reasoning      string  `json:"reasoning"`
	ChunksUsed     int     `json:"chunks_used"`
}

type CompareResumesResponse struct {
	Results              []*ResumeMatch `json:"results"`
	TotalProcessed       int            `json:"total_processed"`
	ResumesCount         int            `json:"resumes_count"`
	JobDescriptionsCount int            `json:"job_descriptions_count"`
}

// Settings and dashboard

type Settings struct {
	CutoffScore        int        `json:"cutoff_score"`
	AutoStatus         string     `json:"auto_status"`
	ShortlistedResetAt *time.Time `json:"shortlisted_reset_at,omitempty"`
}

type GetSettingsRequest struct{}

type UpdateSettingsRequest struct {
	CutoffScore int    `json:"cutoff_score"`
	AutoStatus  string `json:"auto_status"`
}

type GetDashboardRequest struct{}

type DashboardStats struct {
	TotalJobs         int `json:"total_jobs"`
	JobsApplied       int `json:"jobs_applied"`
	TotalApplications int `json:"total_applications"`
	Pending           int `json:"pending"`
	Shortlisted       int `json:"shortlisted"`
	Rejected          int `json:"rejected"`
}

type Dashboard struct {
	Role               string         `json:"role"`
	Stats              DashboardStats `json:"stats"`
	Jobs               []*Job         `json:"jobs"`
	RecentApplications []*Application `json:"recent_applications"`
	ShortlistedResetAt *time.Time     `json:"shortlisted_reset_at,omitempty"`
}

type ResetShortlistedRequest struct{}

type ResetShortlistedResponse struct {
	ResetAt time.Time `json:"reset_at"`
}
