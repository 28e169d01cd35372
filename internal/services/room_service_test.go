package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darshan4295/interview-app/internal/models"
	"github.com/darshan4295/interview-app/internal/rooms"
)

type mockProvisioner struct {
	provisionFunc func(ctx context.Context) (rooms.Provisioned, error)
	calls         atomic.Int32
}

func (m *mockProvisioner) Provision(ctx context.Context) (rooms.Provisioned, error) {
	n := m.calls.Add(1)
	if m.provisionFunc != nil {
		return m.provisionFunc(ctx)
	}
	return rooms.Provisioned{RoomID: "room-" + string(rune('a'+n-1))}, nil
}

type failingLocker struct{}

func (failingLocker) Acquire(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, false, errors.New("connection refused")
}

func newRoomService(env *testEnv, provisioner RoomProvisioner, locker rooms.Locker) *RoomService {
	tokens := rooms.NewTokenIssuer("video-key", "video-secret", time.Hour)
	svc := NewRoomService(env.interviews, provisioner, locker, tokens, 2*time.Second, nil)
	svc.pollInterval = 5 * time.Millisecond
	return svc
}

func TestRoomService_JoinIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	iv := env.seedInterview(t, models.InterviewTechnical)
	provisioner := &mockProvisioner{}
	svc := newRoomService(env, provisioner, nil)

	first, err := svc.Join(ctx, env.candidate, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, "room-a", first.RoomID)
	assert.False(t, first.Fallback)
	assert.NotEmpty(t, first.Token)

	second, err := svc.Join(ctx, env.interviewer, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, first.RoomID, second.RoomID)
	assert.EqualValues(t, 1, provisioner.calls.Load())

	_, err = svc.Join(ctx, env.otherCandidate, iv.ID)
	assert.True(t, models.IsKind(err, models.KindAuthorization))
	_, err = svc.Join(ctx, env.candidate, "missing")
	assert.True(t, models.IsKind(err, models.KindNotFound))
}

func TestRoomService_ConcurrentJoinsShareOneRoom(t *testing.T) {
	env := newTestEnv(t)
	iv := env.seedInterview(t, models.InterviewTechnical)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	provisioner := &mockProvisioner{}
	provisioner.provisionFunc = func(context.Context) (rooms.Provisioned, error) {
		time.Sleep(20 * time.Millisecond)
		return rooms.Provisioned{RoomID: "room-shared"}, nil
	}
	svc := newRoomService(env, provisioner, rooms.NewRedisLocker(client))

	const joiners = 8
	var wg sync.WaitGroup
	results := make([]string, joiners)
	errs := make([]error, joiners)
	for i := 0; i < joiners; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := env.candidate
			if i%2 == 1 {
				p = env.interviewer
			}
			out, err := svc.Join(context.Background(), p, iv.ID)
			errs[i] = err
			if out != nil {
				results[i] = out.RoomID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < joiners; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "room-shared", results[i])
	}
	assert.EqualValues(t, 1, provisioner.calls.Load())
	assert.False(t, mr.Exists(rooms.LockKey(iv.ID)), "lock must be released")
}

func TestRoomService_LockUnavailableStillAssignsOnce(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	iv := env.seedInterview(t, models.InterviewTechnical)
	provisioner := &mockProvisioner{}
	svc := newRoomService(env, provisioner, failingLocker{})

	first, err := svc.Join(ctx, env.candidate, iv.ID)
	require.NoError(t, err)
	second, err := svc.Join(ctx, env.interviewer, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, first.RoomID, second.RoomID)

	// a losing assignment returns the stored room
	won, err := env.interviews.AssignRoom(ctx, iv.ID, "room-late")
	require.NoError(t, err)
	assert.False(t, won)
}

func TestRoomService_Fallback(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	iv := env.seedInterview(t, models.InterviewTechnical)

	degraded := &mockProvisioner{provisionFunc: func(context.Context) (rooms.Provisioned, error) {
		return rooms.Provisioned{RoomID: rooms.StandInRoomID(), Fallback: true}, nil
	}}
	out, err := newRoomService(env, degraded, nil).Join(ctx, env.candidate, iv.ID)
	require.NoError(t, err)
	assert.True(t, out.Fallback)
	assert.Regexp(t, `^interview-[0-9a-f]{12}$`, out.RoomID)

	again, err := newRoomService(env, &mockProvisioner{}, nil).Join(ctx, env.interviewer, iv.ID)
	require.NoError(t, err)
	assert.Equal(t, out.RoomID, again.RoomID)
	assert.True(t, again.Fallback, "stored stand-in rooms stay flagged")

	other := env.seedInterview(t, models.InterviewManagerial)
	failing := &mockProvisioner{provisionFunc: func(context.Context) (rooms.Provisioned, error) {
		return rooms.Provisioned{}, models.UpstreamError("Failed to create video room", errors.New("503"))
	}}
	_, err = newRoomService(env, failing, nil).Join(ctx, env.candidate, other.ID)
	assert.True(t, models.IsKind(err, models.KindUpstream))
	stored, _ := env.interviews.GetByID(ctx, other.ID)
	assert.Nil(t, stored.RoomID)
}

func TestRoomService_VideoToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newRoomService(env, &mockProvisioner{}, nil)

	token, err := svc.VideoToken(ctx, env.candidate)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.VideoToken(ctx, nil)
	assert.True(t, models.IsKind(err, models.KindAuthentication))

	broken := NewRoomService(env.interviews, &mockProvisioner{}, nil, rooms.NewTokenIssuer("", "", time.Hour), time.Second, nil)
	_, err = broken.VideoToken(ctx, env.candidate)
	require.Error(t, err)
	assert.Equal(t, "Failed to generate token", models.AsAppError(err).Message)
}
