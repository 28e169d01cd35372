// Package rooms allocates video rooms for interviews and signs the tokens used to join them.
package rooms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/darshan4295/interview-app/internal/config"
	"github.com/darshan4295/interview-app/internal/metrics"
	"github.com/darshan4295/interview-app/internal/models"
)

// RoomCreator is the raw external room service.
type RoomCreator interface {
	CreateRoom(ctx context.Context) (string, error)
}

// Provisioned is the outcome of one provisioning attempt.
type Provisioned struct {
	RoomID   string
	Fallback bool
}

// PolicyProvisioner bounds the external call with a timeout and applies the fallback policy.
// Under "degrade" a failed call yields a locally derived stand-in id; under "fail" it is an upstream error.
type PolicyProvisioner struct {
	creator RoomCreator
	timeout time.Duration
	policy  string
	logger  *zap.Logger
}

func NewPolicyProvisioner(creator RoomCreator, timeout time.Duration, policy string, logger *zap.Logger) *PolicyProvisioner {
	if policy == "" {
		policy = config.FallbackDegrade
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PolicyProvisioner{creator: creator, timeout: timeout, policy: policy, logger: logger}
}

func (p *PolicyProvisioner) Provision(ctx context.Context) (Provisioned, error) {
	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	roomID, err := p.creator.CreateRoom(callCtx)
	if err == nil {
		metrics.RecordRoom(metrics.RoomProvisioned)
		return Provisioned{RoomID: roomID}, nil
	}

	if p.policy == config.FallbackFail {
		metrics.RecordRoom(metrics.RoomFailed)
		p.logger.Error("room provisioning failed", zap.Error(err))
		return Provisioned{}, models.UpstreamError("Failed to create interview room", err)
	}

	standIn := StandInRoomID()
	metrics.RecordRoom(metrics.RoomFallback)
	p.logger.Warn("room provisioning failed, using stand-in room",
		zap.String("room_id", standIn),
		zap.Error(err))
	return Provisioned{RoomID: standIn, Fallback: true}, nil
}

const standInPrefix = "interview-"

// StandInRoomID derives a room id locally, formatted interview-<12 hex>.
func StandInRoomID() string {
	return standInPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// IsStandIn reports whether roomID was derived locally instead of provisioned.
func IsStandIn(roomID string) bool {
	return strings.HasPrefix(roomID, standInPrefix)
}
