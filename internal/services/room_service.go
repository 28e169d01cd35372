package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/access"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/rooms"
)

type RoomProvisioner interface {
	Provision(ctx context.Context) (rooms.Provisioned, error)
}

type VideoTokenIssuer interface {
	Token() (string, error)
	JoinToken(roomID, participantID string) (string, error)
}

// RoomService assigns at most one video room per interview.
type RoomService struct {
	interviews   InterviewStore
	provisioner  RoomProvisioner
	locker       rooms.Locker
	tokens       VideoTokenIssuer
	lockTTL      time.Duration
	pollInterval time.Duration
	logger       *zap.Logger
}

// NewRoomService builds the service. lockTTL bounds both the lock lifetime and
// how long a contending request waits for the lock holder's room.
func NewRoomService(interviews InterviewStore, provisioner RoomProvisioner, locker rooms.Locker, tokens VideoTokenIssuer, lockTTL time.Duration, logger *zap.Logger) *RoomService {
	if locker == nil {
		locker = rooms.NoopLocker{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		interviews:   interviews,
		provisioner:  provisioner,
		locker:       locker,
		tokens:       tokens,
		lockTTL:      lockTTL,
		pollInterval: 100 * time.Millisecond,
		logger:       logger,
	}
}

// Join returns the interview's room, provisioning it on the first call.
func (s *RoomService) Join(ctx context.Context, p *access.Principal, id string) (*models.RoomAssignment, error) {
	if p == nil {
		return nil, models.AuthenticationError("")
	}
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "")
	}
	if err := access.CanAccess(p, access.InterviewResource(interview), access.ActionJoin); err != nil {
		return nil, err
	}
	if interview.RoomID != nil {
		metrics.RecordRoom(metrics.RoomReused)
		return s.assignment(p, *interview.RoomID), nil
	}

	roomID, err := s.provision(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.assignment(p, roomID), nil
}

func (s *RoomService) provision(ctx context.Context, id string) (string, error) {
	release, acquired, err := s.locker.Acquire(ctx, rooms.LockKey(id), s.lockTTL)
	switch {
	case err != nil:
		// the conditional assignment below still keeps a single room
		s.logger.Warn("room lock unavailable", zap.String("interview_id", id), zap.Error(err))
	case !acquired:
		if roomID, ok := s.waitForRoom(ctx, id); ok {
			return roomID, nil
		}
	default:
		defer release()
		// another request may have finished between our first read and the lock
		if roomID, ok, err := s.storedRoom(ctx, id); err != nil {
			return "", err
		} else if ok {
			return roomID, nil
		}
	}

	provisioned, err := s.provisioner.Provision(ctx)
	if err != nil {
		return "", err
	}
	won, err := s.interviews.AssignRoom(ctx, id, provisioned.RoomID)
	if err != nil {
		return "", storeError(err, "")
	}
	if !won {
		roomID, _, err := s.storedRoom(ctx, id)
		if err != nil {
			return "", err
		}
		s.logger.Info("room already assigned by a concurrent request", zap.String("interview_id", id))
		return roomID, nil
	}

	s.logger.Info("room assigned",
		zap.String("interview_id", id),
		zap.String("room_id", provisioned.RoomID),
		zap.Bool("fallback", provisioned.Fallback))
	return provisioned.RoomID, nil
}

// waitForRoom polls until the lock holder stores a room or the lock would have expired.
func (s *RoomService) waitForRoom(ctx context.Context, id string) (string, bool) {
	deadline := time.NewTimer(s.lockTTL)
	defer deadline.Stop()
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return "", false
		case <-deadline.C:
			return "", false
		case <-ticker.C:
			if roomID, ok, err := s.storedRoom(ctx, id); err == nil && ok {
				return roomID, true
			}
		}
	}
}

func (s *RoomService) storedRoom(ctx context.Context, id string) (string, bool, error) {
	interview, err := s.interviews.GetByID(ctx, id)
	if err != nil {
		return "", false, storeError(err, "")
	}
	if interview.RoomID == nil {
		return "", false, nil
	}
	return *interview.RoomID, true, nil
}

func (s *RoomService) assignment(p *access.Principal, roomID string) *models.RoomAssignment {
	out := &models.RoomAssignment{RoomID: roomID, Fallback: rooms.IsStandIn(roomID)}
	if s.tokens == nil {
		return out
	}
	token, err := s.tokens.JoinToken(roomID, p.ID)
	if err != nil {
		s.logger.Warn("join token unavailable", zap.String("room_id", roomID), zap.Error(err))
		return out
	}
	out.Token = token
	return out
}

// VideoToken issues a token that is not bound to a room.
func (s *RoomService) VideoToken(ctx context.Context, p *access.Principal) (string, error) {
	if err := access.CanAccess(p, access.Collection(access.KindVideo), access.ActionToken); err != nil {
		return "", err
	}
	if s.tokens == nil {
		return "", models.UpstreamError("Failed to generate token", nil)
	}
	token, err := s.tokens.Token()
	if err != nil {
		s.logger.Error("video token failed", zap.Error(err))
		return "", models.UpstreamError("Failed to generate token", err)
	}
	return token, nil
}
