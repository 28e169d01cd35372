package rooms

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VideoSDK permissions carried by join tokens.
const (
	PermissionJoin = "allow_join"
	PermissionMod  = "allow_mod"
)

var ErrMissingCredentials = errors.New("VIDEOSDK_API_KEY and VIDEOSDK_SECRET are required")

// VideoClaims is the VideoSDK token payload.
type VideoClaims struct {
	APIKey        string   `json:"apikey"`
	Permissions   []string `json:"permissions"`
	Version       int      `json:"version"`
	RoomID        string   `json:"roomId,omitempty"`
	ParticipantID string   `json:"participantId,omitempty"`
	jwt.RegisteredClaims
}

// TokenIssuer signs VideoSDK tokens locally with the account secret.
type TokenIssuer struct {
	apiKey string
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(apiKey, secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &TokenIssuer{apiKey: apiKey, secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Token issues a token that is not bound to a room, used for server calls and the generic token endpoint.
func (t *TokenIssuer) Token() (string, error) {
	return t.sign(VideoClaims{Permissions: []string{PermissionJoin, PermissionMod}})
}

// JoinToken issues a token scoped to one room and participant.
func (t *TokenIssuer) JoinToken(roomID, participantID string) (string, error) {
	return t.sign(VideoClaims{
		Permissions:   []string{PermissionJoin},
		RoomID:        roomID,
		ParticipantID: participantID,
	})
}

func (t *TokenIssuer) sign(claims VideoClaims) (string, error) {
	if t.apiKey == "" || len(t.secret) == 0 {
		return "", ErrMissingCredentials
	}
	now := t.now()
	claims.APIKey = t.apiKey
	claims.Version = 2
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}
