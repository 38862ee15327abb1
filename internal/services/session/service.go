// Package session provides the conversation session store on top of the cache.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/storefront-ai/assistant-service/internal/core/cache"
	"github.com/storefront-ai/assistant-service/internal/domain/models"
	"github.com/storefront-ai/assistant-service/internal/pkg/encryption"
)

const (
	// DefaultSessionTTL is the idle lifetime of a session. Every write refreshes it.
	DefaultSessionTTL = time.Hour

	keyPrefix = "session:"
)

// ErrInvalidSessionID is returned for client-supplied ids that cannot be used as keys.
var ErrInvalidSessionID = errors.New("invalid session id")

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// Service provides session state to the orchestrator.
type Service interface {
	// GetSession returns the session for id, creating it when id is empty,
	// unknown or expired. A store outage yields a fresh session, not an error.
	GetSession(ctx context.Context, id string) (*models.Session, error)

	// FindSession returns the stored session or nil when there is none. It never creates.
	FindSession(ctx context.Context, id string) (*models.Session, error)

	// AddMessage appends one message to the history.
	AddMessage(ctx context.Context, id, content string, isUser bool) error

	// AppendExchange appends a user message and the assistant reply in one write.
	AppendExchange(ctx context.Context, id, userMessage, reply string) error

	// UpdateContext applies fn to the stored context and rewrites the session.
	UpdateContext(ctx context.Context, id string, fn func(*models.SessionContext)) error

	// ExtractPreferences harvests preferences from message into the session.
	ExtractPreferences(ctx context.Context, id, message string) (models.Preferences, error)

	SetLastRecommendations(ctx context.Context, id string, refs []models.ProductRef) error
	GetLastRecommendations(ctx context.Context, id string) ([]models.ProductRef, error)
	SetLastSearchContext(ctx context.Context, id string, filter *models.SearchFilter) error
	GetLastSearchContext(ctx context.Context, id string) (*models.SearchFilter, error)

	// IncrementFailedAttempts records a collaborator failure and returns the new count.
	IncrementFailedAttempts(ctx context.Context, id string) (int, error)

	// BuildCacheKey generates the cache key for a session.
	BuildCacheKey(id string) string
}

// Config holds the configuration for the session service.
type Config struct {
	CacheClient cache.Client
	Encryptor   encryption.Encryptor
	TTL         time.Duration
	Now         func() time.Time
}

type service struct {
	cacheClient cache.Client
	encryptor   encryption.Encryptor
	ttl         time.Duration
	now         func() time.Time
}

// NewService creates a new session service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}

	s := &service{
		cacheClient: cfg.CacheClient,
		encryptor:   cfg.Encryptor,
		ttl:         cfg.TTL,
		now:         cfg.Now,
	}
	if s.encryptor == nil {
		s.encryptor = encryption.NoOp{}
	}
	if s.ttl == 0 {
		s.ttl = DefaultSessionTTL
	}
	if s.now == nil {
		s.now = func() time.Time { return time.Now().UTC() }
	}
	return s, nil
}

// ValidateID checks a client-supplied session id. Empty ids are valid and mean "create".
func ValidateID(id string) error {
	if id == "" || sessionIDPattern.MatchString(id) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
}

func (s *service) GetSession(ctx context.Context, id string) (*models.Session, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	if id != "" {
		if sess := s.load(ctx, id); sess != nil {
			return sess, nil
		}
	} else {
		id = uuid.NewString()
	}

	sess := models.NewSession(id, s.now())
	if err := s.save(ctx, sess); err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("failed to persist new session")
	}
	return sess, nil
}

func (s *service) FindSession(ctx context.Context, id string) (*models.Session, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidSessionID)
	}
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	return s.load(ctx, id), nil
}

func (s *service) AddMessage(ctx context.Context, id, content string, isUser bool) error {
	return s.mutate(ctx, id, func(sess *models.Session) {
		sess.AppendMessages(s.message(content, isUser))
	})
}

func (s *service) AppendExchange(ctx context.Context, id, userMessage, reply string) error {
	return s.mutate(ctx, id, func(sess *models.Session) {
		sess.AppendMessages(s.message(userMessage, true), s.message(reply, false))
	})
}

func (s *service) UpdateContext(ctx context.Context, id string, fn func(*models.SessionContext)) error {
	return s.mutate(ctx, id, func(sess *models.Session) {
		fn(&sess.Context)
	})
}

func (s *service) ExtractPreferences(ctx context.Context, id, message string) (models.Preferences, error) {
	var prefs models.Preferences
	err := s.mutate(ctx, id, func(sess *models.Session) {
		sess.Context.Preferences = ExtractPreferences(sess.Context.Preferences, message)
		prefs = sess.Context.Preferences
	})
	return prefs, err
}

func (s *service) SetLastRecommendations(ctx context.Context, id string, refs []models.ProductRef) error {
	return s.UpdateContext(ctx, id, func(c *models.SessionContext) {
		c.SetRecommendations(refs)
	})
}

func (s *service) GetLastRecommendations(ctx context.Context, id string) ([]models.ProductRef, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Context.LastRecommendations, nil
}

func (s *service) SetLastSearchContext(ctx context.Context, id string, filter *models.SearchFilter) error {
	return s.UpdateContext(ctx, id, func(c *models.SessionContext) {
		c.LastSearchContext = filter.Clone()
		c.ShownHandles = nil
	})
}

func (s *service) GetLastSearchContext(ctx context.Context, id string) (*models.SearchFilter, error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return sess.Context.LastSearchContext, nil
}

func (s *service) IncrementFailedAttempts(ctx context.Context, id string) (int, error) {
	var n int
	err := s.UpdateContext(ctx, id, func(c *models.SessionContext) {
		c.FailedAttempts++
		n = c.FailedAttempts
	})
	return n, err
}

// BuildCacheKey generates the cache key for a session.
func (s *service) BuildCacheKey(id string) string {
	return keyPrefix + id
}

// mutate re-reads the whole session, applies fn and rewrites it with a fresh TTL.
func (s *service) mutate(ctx context.Context, id string, fn func(*models.Session)) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSessionID)
	}
	if err := ValidateID(id); err != nil {
		return err
	}
	sess := s.load(ctx, id)
	if sess == nil {
		sess = models.NewSession(id, s.now())
	}
	fn(sess)
	sess.LastActivity = s.now()
	return s.save(ctx, sess)
}

// load returns nil when the session is absent, expired or unreadable.
func (s *service) load(ctx context.Context, id string) *models.Session {
	key := s.BuildCacheKey(id)
	sealed, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("session_id", id).Msg("session read failed, starting fresh")
		return nil
	}
	if sealed == nil {
		return nil
	}

	// A payload that no longer opens (rotated key, corruption) is discarded.
	data, err := s.encryptor.Open(string(sealed), []byte(key))
	if err != nil {
		log.Debug().Err(err).Str("session_id", id).Msg("discarding unreadable session")
		_, _ = s.cacheClient.Delete(ctx, key)
		return nil
	}
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		log.Debug().Err(err).Str("session_id", id).Msg("discarding corrupt session")
		_, _ = s.cacheClient.Delete(ctx, key)
		return nil
	}
	return &sess
}

func (s *service) save(ctx context.Context, sess *models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	key := s.BuildCacheKey(sess.ID)
	sealed, err := s.encryptor.Seal(data, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}
	if err := s.cacheClient.Set(ctx, key, []byte(sealed), s.ttl); err != nil {
		return fmt.Errorf("failed to store session in cache: %w", err)
	}
	return nil
}

func (s *service) message(content string, isUser bool) models.Message {
	return models.Message{
		ID:        uuid.NewString(),
		Content:   content,
		IsUser:    isUser,
		Timestamp: s.now(),
	}
}
