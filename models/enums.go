package models

// UserRole decides which hackathons a user can see and manage.
type UserRole string

const (
	RoleSuperadmin UserRole = "superadmin"
	RoleOrganizer  UserRole = "organizer"
)

func (r UserRole) Valid() bool {
	return r == RoleSuperadmin || r == RoleOrganizer
}

type HackathonStatus string

const (
	HackathonUpcoming HackathonStatus = "upcoming"
	HackathonOngoing  HackathonStatus = "ongoing"
	HackathonPast     HackathonStatus = "past"
)

func (s HackathonStatus) Valid() bool {
	switch s {
	case HackathonUpcoming, HackathonOngoing, HackathonPast:
		return true
	}
	return false
}

type HackathonType string

const (
	HackathonOnline  HackathonType = "online"
	HackathonOffline HackathonType = "offline"
	HackathonHybrid  HackathonType = "hybrid"
)

func (t HackathonType) Valid() bool {
	switch t {
	case HackathonOnline, HackathonOffline, HackathonHybrid:
		return true
	}
	return false
}

type LandingPageType string

const (
	LandingTemplate LandingPageType = "template"
	LandingCustom   LandingPageType = "custom"
)

func (t LandingPageType) Valid() bool {
	return t == LandingTemplate || t == LandingCustom
}

type ParticipantStatus string

const (
	ParticipantApplied  ParticipantStatus = "applied"
	ParticipantApproved ParticipantStatus = "approved"
	ParticipantRejected ParticipantStatus = "rejected"
)

func (s ParticipantStatus) Valid() bool {
	switch s {
	case ParticipantApplied, ParticipantApproved, ParticipantRejected:
		return true
	}
	return false
}

type TeamStatus string

const (
	TeamForming   TeamStatus = "forming"
	TeamComplete  TeamStatus = "complete"
	TeamSubmitted TeamStatus = "submitted"
)

func (s TeamStatus) Valid() bool {
	switch s {
	case TeamForming, TeamComplete, TeamSubmitted:
		return true
	}
	return false
}

type SubmissionStatus string

const (
	SubmissionSubmitted   SubmissionStatus = "submitted"
	SubmissionUnderReview SubmissionStatus = "under_review"
	SubmissionEvaluated   SubmissionStatus = "evaluated"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionSubmitted, SubmissionUnderReview, SubmissionEvaluated:
		return true
	}
	return false
}

// Activity log vocabulary.
const (
	ActionLogin           = "login"
	ActionRegister        = "register"
	ActionCreateHackathon = "create_hackathon"
	ActionUpdateHackathon = "update_hackathon"
	ActionDeleteHackathon = "delete_hackathon"

	ResourceUser      = "user"
	ResourceHackathon = "hackathon"
)
