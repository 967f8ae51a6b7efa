// Package auth implements stateful sessions carried by signed tokens.
//
// The proof of identity handed to clients is an HS256 JWT, but it is not
// self-sufficient: its sid claim names a server-side redis session, and
// Authenticate requires both a valid signature and a live session. Logout
// deletes the redis entry, so a revoked token is rejected immediately —
// the invalidation guarantee of a server-side session, which a bare
// stateless JWT cannot give.
package auth

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthenticated covers every failure mode of Authenticate: malformed
// token, bad signature, expired token, revoked or expired session. Callers
// get one error so responses cannot leak which check failed.
var ErrUnauthenticated = errors.New("unauthenticated")

const sessionKeyPrefix = "session:"

type sessionClaims struct {
	UserID    uint   `json:"user_id"`
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	rdb    *redis.Client
	secret []byte
	ttl    time.Duration
}

func NewSessionManager(rdb *redis.Client, secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{rdb: rdb, secret: []byte(secret), ttl: ttl}
}

// Issue creates a server-side session for the user and returns the signed
// token that references it.
func (m *SessionManager) Issue(ctx context.Context, userID uint) (string, error) {
	sid := uuid.NewString()
	if err := m.rdb.Set(ctx, sessionKeyPrefix+sid, strconv.FormatUint(uint64(userID), 10), m.ttl).Err(); err != nil {
		return "", err
	}

	now := time.Now()
	claims := &sessionClaims{
		UserID:    userID,
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Authenticate resolves a token to the user it acts for. The session lookup
// is what makes revocation real: a token that parses fine but whose session
// was deleted (logout) or expired is rejected.
func (m *SessionManager) Authenticate(ctx context.Context, token string) (uint, error) {
	claims, err := m.parse(token)
	if err != nil {
		return 0, ErrUnauthenticated
	}

	val, err := m.rdb.Get(ctx, sessionKeyPrefix+claims.SessionID).Result()
	if err == redis.Nil {
		return 0, ErrUnauthenticated
	}
	if err != nil {
		return 0, err
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil || uint(userID) != claims.UserID {
		return 0, ErrUnauthenticated
	}
	return uint(userID), nil
}

// Revoke deletes the session a token points at. Idempotent: revoking an
// unknown, expired or already-revoked token is not an error.
func (m *SessionManager) Revoke(ctx context.Context, token string) error {
	claims, err := m.parse(token)
	if err != nil {
		return nil
	}
	return m.rdb.Del(ctx, sessionKeyPrefix+claims.SessionID).Err()
}

func (m *SessionManager) parse(token string) (*sessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.SessionID == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
