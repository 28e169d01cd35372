package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/analysis"
	"github.com/darshan4295/interview-app/internal/lifecycle"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/models"
)

type InterviewService struct {
	interviews InterviewStore
	users      UserStore
	oracle     analysis.Oracle
	logger     *zap.Logger
	now        func() time.Time
}

func NewInterviewService(interviews InterviewStore, users UserStore, oracle analysis.Oracle, logger *zap.Logger) *InterviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InterviewService{interviews: interviews, users: users, oracle: oracle, logger: logger, now: time.Now}
}

// Create schedules an interview between an existing candidate and interviewer.
func (s *InterviewService) Create(ctx context.Context, p *access.Principal, req *models.CreateInterviewRequest) (*models.Interview, error) {
	if err := access.CanAccess(p, access.Collection(access.KindInterview), access.ActionCreate); err != nil {
		return nil, err
	}
	if err := s.checkNotPast(req.ScheduledTime()); err != nil {
		return nil, err
	}
	if _, err := userWithRole(ctx, s.users, req.CandidateID, models.RoleCandidate, "candidateId", "Candidate"); err != nil {
		return nil, err
	}
	if _, err := userWithRole(ctx, s.users, req.InterviewerID, models.RoleInterviewer, "interviewerId", "Interviewer"); err != nil {
		return nil, err
	}

	interview := &models.Interview{
		Title:         req.Title,
		Type:          req.Type,
		Status:        models.InterviewScheduled,
		ScheduledAt:   req.ScheduledTime().UTC(),
		Duration:      *req.Duration,
		CandidateID:   req.CandidateID,
		InterviewerID: req.InterviewerID,
	}
	if err := s.interviews.Create(ctx, interview); err != nil {
		return nil, storeError(err, "")
	}
	s.logger.Info("interview scheduled",
		zap.String("interview_id", interview.ID),
		zap.String("candidate_id", interview.CandidateID),
		zap.String("actor", p.ID))
	return s.load(ctx, interview.ID)
}

// List returns the interviews visible to p: their own, or all for admins.
func (s *InterviewService) List(ctx context.Context, p *access.Principal, filter models.InterviewFilter) ([]models.Interview, error) {
	if err := access.CanAccess(p, access.Collection(access.KindInterview), access.ActionList); err != nil {
		return nil, err
	}
	switch p.Role {
	case models.RoleCandidate:
		filter.CandidateID = p.ID
	case models.RoleInterviewer:
		filter.InterviewerID = p.ID
	}
	interviews, err := s.interviews.List(ctx, filter)
	if err != nil {
		return nil, storeError(err, "")
	}
	return interviews, nil
}

func (s *InterviewService) Get(ctx context.Context, p *access.Principal, id string) (*models.Interview, error) {
	return s.authorized(ctx, p, id, access.ActionView)
}

// Reschedule changes title, time or duration while the interview is still SCHEDULED.
func (s *InterviewService) Reschedule(ctx context.Context, p *access.Principal, id string, req *models.UpdateInterviewRequest) (*models.Interview, error) {
	interview, err := s.authorized(ctx, p, id, access.ActionUpdate)
	if err != nil {
		return nil, err
	}
	if interview.Status != models.InterviewScheduled {
		return nil, models.ConflictError("Only scheduled interviews can be updated")
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if at := req.ScheduledTime(); at != nil {
		if err := s.checkNotPast(*at); err != nil {
			return nil, err
		}
		updates["scheduled_at"] = at.UTC()
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if err := s.interviews.Reschedule(ctx, id, updates); err != nil {
		return nil, storeError(err, "Only scheduled interviews can be updated")
	}
	return s.load(ctx, id)
}

func (s *InterviewService) Cancel(ctx context.Context, p *access.Principal, id string) (*models.Interview, error) {
	return s.transition(ctx, p, id, access.ActionCancel, models.InterviewCancelled)
}

// Complete rejects an already completed interview rather than treating it as a no-op.
func (s *InterviewService) Complete(ctx context.Context, p *access.Principal, id string) (*models.Interview, error) {
	return s.transition(ctx, p, id, access.ActionComplete, models.InterviewCompleted)
}

func (s *InterviewService) transition(ctx context.Context, p *access.Principal, id string, action access.Action, to models.InterviewStatus) (*models.Interview, error) {
	interview, err := s.authorized(ctx, p, id, action)
	if err != nil {
		return nil, err
	}
	from := interview.Status
	msg := transitionMessage(from, to)
	if err := lifecycle.Interviews.Check(from, to, msg); err != nil {
		return nil, err
	}
	if err := s.interviews.UpdateStatus(ctx, id, from, to); err != nil {
		return nil, storeError(err, msg)
	}

	metrics.RecordTransition(lifecycle.Interviews.Entity(), string(from), string(to))
	s.logger.Info("interview status changed",
		zap.String("interview_id", id),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("actor", p.ID))
	return s.load(ctx, id)
}

func transitionMessage(from, to models.InterviewStatus) string {
	if from == to {
		return "Interview is already " + strings.ToLower(string(to))
	}
	verb := "complete"
	if to == models.InterviewCancelled {
		verb = "cancel"
	}
	return "Cannot " + verb + " an interview that is " + strings.ToLower(string(from))
}

// AttachTranscript analyzes the transcript and stores both together.
// When analysis fails nothing is written.
func (s *InterviewService) AttachTranscript(ctx context.Context, p *access.Principal, id, transcript string) (*models.TranscriptAnalysis, error) {
	interview, err := s.authorized(ctx, p, id, access.ActionAttachTranscript)
	if err != nil {
		return nil, err
	}
	if interview.Status == models.InterviewCancelled {
		return nil, models.ConflictError("Cannot attach a transcript to a cancelled interview")
	}

	result, err := s.oracle.AnalyzeTranscript(ctx, transcript, interview.Type)
	if err != nil {
		s.logger.Error("transcript analysis failed", zap.String("interview_id", id), zap.Error(err))
		return nil, err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return nil, models.InternalError(err)
	}
	if err := s.interviews.SaveTranscript(ctx, id, interview.Status, transcript, raw); err != nil {
		return nil, storeError(err, "Interview changed while the transcript was analyzed, please retry")
	}
	s.logger.Info("transcript attached", zap.String("interview_id", id), zap.String("actor", p.ID))
	return result, nil
}

func (s *InterviewService) Transcript(ctx context.Context, p *access.Principal, id string) (*models.TranscriptView, error) {
	interview, err := s.authorized(ctx, p, id, access.ActionView)
	if err != nil {
		return nil, err
	}
	if interview.Transcript == nil {
		return nil, models.NotFoundError("Transcript not available")
	}
	return &models.TranscriptView{Transcript: *interview.Transcript, Analysis: interview.AIAnalysis}, nil
}

// Feedback stores the interviewer's notes on a completed interview.
func (s *InterviewService) Feedback(ctx context.Context, p *access.Principal, id, feedback string) (*models.Interview, error) {
	interview, err := s.authorized(ctx, p, id, access.ActionFeedback)
	if err != nil {
		return nil, err
	}
	const msg = "Feedback can only be provided for completed interviews"
	if interview.Status != models.InterviewCompleted {
		return nil, models.ConflictError(msg)
	}
	if err := s.interviews.SaveFeedback(ctx, id, feedback); err != nil {
		return nil, storeError(err, msg)
	}
	return s.load(ctx, id)
}

// authorized loads the interview and checks action against its current participants.
func (s *InterviewService) authorized(ctx context.Context, p *access.Principal, id string, action access.Action) (*models.Interview, error) {
	if p == nil {
		return nil, models.AuthenticationError("")
	}
	interview, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CanAccess(p, access.InterviewResource(interview), action); err != nil {
		return nil, err
	}
	return interview, nil
}

func (s *InterviewService) load(ctx context.Context, id string) (*models.Interview, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	return interview, nil
}

func (s *InterviewService) checkNotPast(at time.Time) error {
	if at.Before(s.now().Truncate(time.Second)) {
		return models.ValidationError("Scheduled time cannot be in the past",
			models.FieldError("scheduledAt", "must not be in the past"))
	}
	return nil
}
