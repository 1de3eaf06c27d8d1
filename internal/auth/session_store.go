package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/resort-admin-service/internal/config"
	"github.com/spec-kit/resort-admin-service/internal/domain"
)

const (
	sessionKeyPrefix    = "session:"
	subjectKeyPrefix    = "principal_sessions:"
	sessionEventChannel = "backoffice:session_events"
)

// ErrSessionNotFound is returned when a session id does not resolve.
var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side cookie session stored in redis.
type Session struct {
	ID          string
	PrincipalID string
	Role        domain.Role
}

// SessionEvent is published on the session-change channel whenever a
// session is created or destroyed. Watchers recompute their state from
// the authoritative store on every event rather than trusting the payload.
type SessionEvent struct {
	Kind        string `json:"kind"`
	PrincipalID string `json:"principal_id"`
	SessionID   string `json:"session_id,omitempty"`
}

// Session event kinds.
const (
	SessionEventSignedIn  = "signed_in"
	SessionEventSignedOut = "signed_out"
)

// SessionStore manages cookie sessions in redis. Each subject keeps an
// index set of its live session ids so all of them can be invalidated at
// once when the account is deactivated.
type SessionStore struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
}

// NewSessionStore builds a store over the shared redis client.
func NewSessionStore(client *redis.Client, cfg config.SessionConfig) *SessionStore {
	return &SessionStore{
		client:     client,
		cookieName: cfg.CookieName,
		ttl:        cfg.TTL(),
		secure:     cfg.CookieSecure,
	}
}

// CookieName returns the configured session cookie name.
func (s *SessionStore) CookieName() string {
	return s.cookieName
}

// Create persists a new session and announces it on the event channel.
func (s *SessionStore) Create(ctx context.Context, principalID string, role domain.Role) (*Session, error) {
	sess := &Session{
		ID:          uuid.NewString(),
		PrincipalID: principalID,
		Role:        role,
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, sessionKeyPrefix+sess.ID, "principal_id", principalID, "role", string(role))
	pipe.Expire(ctx, sessionKeyPrefix+sess.ID, s.ttl)
	pipe.SAdd(ctx, subjectKeyPrefix+principalID, sess.ID)
	pipe.Expire(ctx, subjectKeyPrefix+principalID, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	s.publish(ctx, SessionEvent{Kind: SessionEventSignedIn, PrincipalID: principalID, SessionID: sess.ID})
	return sess, nil
}

// Get resolves a session id against redis.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	fields, err := s.client.HGetAll(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrSessionNotFound
	}
	return &Session{
		ID:          id,
		PrincipalID: fields["principal_id"],
		Role:        domain.Role(fields["role"]),
	}, nil
}

// Destroy removes a single session.
func (s *SessionStore) Destroy(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, sessionKeyPrefix+id)
	pipe.SRem(ctx, subjectKeyPrefix+sess.PrincipalID, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	s.publish(ctx, SessionEvent{Kind: SessionEventSignedOut, PrincipalID: sess.PrincipalID, SessionID: id})
	return nil
}

// InvalidateSubject deletes every live session belonging to a principal
// and returns how many were removed.
func (s *SessionStore) InvalidateSubject(ctx context.Context, principalID string) (int, error) {
	ids, err := s.client.SMembers(ctx, subjectKeyPrefix+principalID).Result()
	if err != nil {
		return 0, err
	}

	if len(ids) > 0 {
		keys := make([]string, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, sessionKeyPrefix+id)
		}
		pipe := s.client.TxPipeline()
		pipe.Del(ctx, keys...)
		pipe.Del(ctx, subjectKeyPrefix+principalID)
		if _, err := pipe.Exec(ctx); err != nil {
			return 0, err
		}
	}

	s.publish(ctx, SessionEvent{Kind: SessionEventSignedOut, PrincipalID: principalID})
	return len(ids), nil
}

// Subscribe opens a pub/sub subscription on the session-change channel.
// The caller owns the returned handle and must Close it.
func (s *SessionStore) Subscribe(ctx context.Context) *redis.PubSub {
	return s.client.Subscribe(ctx, sessionEventChannel)
}

// DecodeSessionEvent parses a pub/sub payload.
func DecodeSessionEvent(payload string) (SessionEvent, error) {
	var ev SessionEvent
	err := json.Unmarshal([]byte(payload), &ev)
	return ev, err
}

func (s *SessionStore) publish(ctx context.Context, ev SessionEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_ = s.client.Publish(ctx, sessionEventChannel, payload).Err()
}

// WriteCookie attaches the session cookie to the response.
func (s *SessionStore) WriteCookie(c *fiber.Ctx, sess *Session) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    sess.ID,
		Expires:  time.Now().Add(s.ttl),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}

// ClearCookie expires the session cookie.
func (s *SessionStore) ClearCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   s.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
}
