// Package access is the single authorization point. Every service operation asks
// CanAccess before it mutates or returns a resource.
package access

import (
	"github.com/darshan4295/interview-app/internal/lifecycle"
	"github.com/darshan4295/interview-app/internal/models"
)

// Principal is the authenticated caller, loaded from the store on every request.
type Principal struct {
	ID    string
	Name  string
	Email string
	Role  models.Role
}

func PrincipalOf(u *models.User) *Principal {
	return &Principal{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (p *Principal) IsAdmin() bool { return p != nil && p.Role == models.RoleAdmin }

type Kind string

const (
	KindInterview  Kind = "interview"
	KindAssessment Kind = "assessment"
	KindReport     Kind = "report"
	KindUser       Kind = "user"
	KindVideo      Kind = "video"
)

type Action string

const (
	ActionList             Action = "list"
	ActionView             Action = "view"
	ActionCreate           Action = "create"
	ActionUpdate           Action = "update"
	ActionDelete           Action = "delete"
	ActionCancel           Action = "cancel"
	ActionComplete         Action = "complete"
	ActionAttachTranscript Action = "attach_transcript"
	ActionFeedback         Action = "feedback"
	ActionJoin             Action = "join"
	ActionSubmit           Action = "submit"
	ActionReview           Action = "review"
	ActionGenerate         Action = "generate"
	ActionToken            Action = "token"
	ActionStats            Action = "stats"
)

// Resource carries the ownership facts of the target as currently persisted.
// Collection resources (create, list) leave the owner fields empty.
type Resource struct {
	Kind             Kind
	CandidateID      string
	InterviewerID    string
	Reviewer         lifecycle.Assignment
	AssessmentStatus models.AssessmentStatus
}

func Collection(kind Kind) Resource { return Resource{Kind: kind} }

func InterviewResource(iv *models.Interview) Resource {
	return Resource{Kind: KindInterview, CandidateID: iv.CandidateID, InterviewerID: iv.InterviewerID}
}

func AssessmentResource(a *models.CodingAssessment) Resource {
	return Resource{
		Kind:             KindAssessment,
		CandidateID:      a.CandidateID,
		Reviewer:         lifecycle.AssignmentOf(a.ReviewerID),
		AssessmentStatus: a.Status,
	}
}

func ReportResource(candidateID string) Resource {
	return Resource{Kind: KindReport, CandidateID: candidateID}
}

func UserResource(userID string) Resource {
	return Resource{Kind: KindUser, CandidateID: userID}
}

// grant is one way a non-admin principal can be related to a resource.
type grant func(p *Principal, r Resource) bool

func asCandidate(p *Principal, r Resource) bool {
	return p.Role == models.RoleCandidate && r.CandidateID != "" && r.CandidateID == p.ID
}

func asInterviewer(p *Principal, r Resource) bool {
	return p.Role == models.RoleInterviewer && r.InterviewerID != "" && r.InterviewerID == p.ID
}

func asReviewer(p *Principal, r Resource) bool {
	return p.Role == models.RoleInterviewer && r.Reviewer.Is(p.ID)
}

func asClaimer(p *Principal, r Resource) bool {
	return p.Role == models.RoleInterviewer && lifecycle.Claimable(r.AssessmentStatus, r.Reviewer)
}

func anyInterviewer(p *Principal, _ Resource) bool { return p.Role == models.RoleInterviewer }

func anyone(*Principal, Resource) bool { return true }

// rule lists the grants for one (kind, action). Admins pass every rule unless exclusive.
type rule struct {
	grants    []grant
	exclusive bool
}

var policy = map[Kind]map[Action]rule{
	KindInterview: {
		ActionList:             {grants: []grant{anyone}},
		ActionCreate:           {grants: []grant{anyInterviewer}},
		ActionView:             {grants: []grant{asCandidate, asInterviewer}},
		ActionJoin:             {grants: []grant{asCandidate, asInterviewer}},
		ActionCancel:           {grants: []grant{asCandidate, asInterviewer}},
		ActionUpdate:           {grants: []grant{asInterviewer}},
		ActionComplete:         {grants: []grant{asInterviewer}},
		ActionAttachTranscript: {grants: []grant{asInterviewer}},
		ActionFeedback:         {grants: []grant{asInterviewer}},
	},
	KindAssessment: {
		ActionList:   {grants: []grant{anyone}},
		ActionCreate: {grants: []grant{anyInterviewer}},
		ActionView:   {grants: []grant{asCandidate, asReviewer, asClaimer}},
		ActionSubmit: {grants: []grant{asCandidate}, exclusive: true},
		ActionReview: {grants: []grant{anyInterviewer}},
	},
	KindReport: {
		ActionView:     {grants: []grant{asCandidate}},
		ActionGenerate: {},
	},
	KindUser: {
		ActionList:   {grants: []grant{anyInterviewer}},
		ActionView:   {grants: []grant{anyInterviewer}},
		ActionCreate: {},
		ActionUpdate: {},
		ActionDelete: {},
		ActionStats:  {},
	},
	KindVideo: {
		ActionToken: {grants: []grant{anyone}},
	},
}

// CanAccess decides whether p may perform action on r.
// A nil principal is an authentication failure; anything not granted is forbidden.
func CanAccess(p *Principal, r Resource, action Action) error {
	if p == nil || p.ID == "" {
		return models.AuthenticationError("")
	}
	if Allowed(p, r, action) {
		return nil
	}
	return models.ForbiddenError("")
}

// Allowed is the boolean form of CanAccess for an authenticated principal.
func Allowed(p *Principal, r Resource, action Action) bool {
	if p == nil || !p.Role.IsValid() {
		return false
	}
	rl, ok := policy[r.Kind][action]
	if !ok {
		return false
	}
	if p.Role == models.RoleAdmin && !rl.exclusive {
		return true
	}
	for _, g := range rl.grants {
		if g(p, r) {
			return true
		}
	}
	return false
}
