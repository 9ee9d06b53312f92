package data

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Role is the account type of a user.
type Role string

const (
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleRecruiter || r == RoleCandidate
}

// Status is the lifecycle state of an application.
type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
	StatusFailed      Status = "failed"
)

// Valid reports whether s is one of the known application statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusReviewed, StatusShortlisted, StatusRejected, StatusHired, StatusFailed:
		return true
	}
	return false
}

// Default recruiter screening settings.
const (
	DefaultCutoffScore = 70
	DefaultAutoStatus  = StatusShortlisted
)

// RecruiterSettings holds per-recruiter screening preferences.
type RecruiterSettings struct {
	CutoffScore        int        `bson:"cutoff_score"`
	AutoStatus         Status     `bson:"auto_status"`
	ShortlistedResetAt *time.Time `bson:"shortlisted_reset_at,omitempty"`
}

// User maps to the users collection.
type User struct {
	ID              bson.ObjectID      `bson:"_id,omitempty"`
	Email           string             `bson:"email"`
	Password        string             `bson:"password"`
	DisplayName     string             `bson:"display_name"`
	Name            string             `bson:"name"`
	Role            Role               `bson:"role"`
	ProfileImageURL string             `bson:"profile_image_url,omitempty"`
	PhotoURL        string             `bson:"photo_url,omitempty"`
	CompanyName     string             `bson:"company_name,omitempty"`
	Bio             string             `bson:"bio,omitempty"`
	Tags            []string           `bson:"tags,omitempty"`
	Skills          []string           `bson:"skills,omitempty"`
	Settings        *RecruiterSettings `bson:"settings,omitempty"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

// IDHex returns the user id in the string form used across the API.
func (u *User) IDHex() string { return u.ID.Hex() }

// Label is the name shown to other users: name, else display name.
func (u *User) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return u.DisplayName
}

// Avatar returns the profile image, falling back to the provider photo.
func (u *User) Avatar() string {
	if u.ProfileImageURL != "" {
		return u.ProfileImageURL
	}
	return u.PhotoURL
}

// ScreeningSettings returns the recruiter settings with defaults applied.
func (u *User) ScreeningSettings() RecruiterSettings {
	s := RecruiterSettings{CutoffScore: DefaultCutoffScore, AutoStatus: DefaultAutoStatus}
	if u.Settings != nil {
		s = *u.Settings
		if !s.AutoStatus.Valid() {
			s.AutoStatus = DefaultAutoStatus
		}
	}
	return s
}

// LastMessage is the chat list preview of the most recent message.
type LastMessage struct {
	Text     string    `bson:"text"`
	SenderID string    `bson:"sender_id"`
	SentAt   time.Time `bson:"sent_at"`
}

// Chat is one owner's copy of a one-to-one chat. Each pair of users has two
// copies sharing ChatID, one per participant.
type Chat struct {
	ID           string       `bson:"_id"`
	ChatID       string       `bson:"chat_id"`
	OwnerID      string       `bson:"owner_id"`
	OtherUserID  string       `bson:"other_user_id"`
	Participants []string     `bson:"participants"`
	LastMessage  *LastMessage `bson:"last_message"`
	UnreadCount  int          `bson:"unread_count"`
	CreatedAt    time.Time    `bson:"created_at"`
	Timestamp    time.Time    `bson:"timestamp"`
}

// ChatCopyID is the document id of ownerID's copy of chatID.
func ChatCopyID(ownerID, chatID string) string {
	return ownerID + "/" + chatID
}

// Message maps to the messages collection.
type Message struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	ChatID      string        `bson:"chat_id"`
	SenderID    string        `bson:"sender_id"`
	RecipientID string        `bson:"recipient_id"`
	Content     string        `bson:"content"`
	SentAt      time.Time     `bson:"sent_at"`
}

// Job maps to the jobs collection.
type Job struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	RecruiterID string        `bson:"recruiter_id"`
	Title       string        `bson:"title"`
	Company     string        `bson:"company"`
	Location    string        `bson:"location"`
	Description string        `bson:"description"`
	JDFileURL   string        `bson:"jd_file_url,omitempty"`
	JDFileName  string        `bson:"jd_file_name,omitempty"`
	Tags        []string      `bson:"tags,omitempty"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

// HasDescription reports whether the job carries text or a file to score against.
func (j *Job) HasDescription() bool {
	return j.Description != "" || j.JDFileURL != ""
}

// Application maps to the applications collection.
type Application struct {
	ID            bson.ObjectID `bson:"_id,omitempty"`
	JobID         string        `bson:"job_id"`
	RecruiterID   string        `bson:"recruiter_id"`
	CandidateID   string        `bson:"candidate_id"`
	CandidateName string        `bson:"candidate_name"`
	ResumeURL     string        `bson:"resume_url"`
	CoverLetter   string        `bson:"cover_letter,omitempty"`
	Status        Status        `bson:"status"`
	Score         *float64      `bson:"score,omitempty"`
	Reasoning     string        `bson:"reasoning,omitempty"`
	CreatedAt     time.Time     `bson:"created_at"`
	UpdatedAt     time.Time     `bson:"updated_at"`
}
