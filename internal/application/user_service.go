package application

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ramah83/ST-System-Bank/internal/domain/entity"
	"github.com/ramah83/ST-System-Bank/internal/domain/repository"
	"github.com/ramah83/ST-System-Bank/pkg/helpers"
)

// Session is the server-side half of a login, stored in Redis under the
// session id carried in the JWT. Deleting the key logs the user out
// everywhere regardless of token lifetime.
type Session struct {
	UserID      string    `json:"user_id"`
	Email       string    `json:"email"`
	IsStaff     bool      `json:"is_staff"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   time.Time `json:"created_at"`
}

// TokenPair is an access/refresh token set with their expiries, ready to be
// written into cookies.
type TokenPair struct {
	Access         string
	AccessExpires  time.Time
	Refresh        string
	RefreshExpires time.Time
	SessionID      string
}

// UserDoc is the search projection of a user kept in Elasticsearch.
type UserDoc struct {
	ID       string    `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	IsStaff  bool      `json:"is_staff"`
	JoinedAt time.Time `json:"joined_at"`
}

// UserService owns authentication, sessions and the user directory.
type UserService struct {
	users   repository.UserRepository
	rdb     *redis.Client
	es      *elasticsearch.Client
	esIndex string
	jwt     *helpers.JWTManager
	policy  *AccessPolicy
	logger  *logrus.Logger
}

func NewUserService(
	users repository.UserRepository,
	rdb *redis.Client,
	es *elasticsearch.Client,
	esIndex string,
	jwt *helpers.JWTManager,
	policy *AccessPolicy,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		users:   users,
		rdb:     rdb,
		es:      es,
		esIndex: esIndex,
		jwt:     jwt,
		policy:  policy,
		logger:  logger,
	}
}

func sessionKey(id string) string { return "session:" + id }

// Login checks credentials and mints a fresh session with a token pair.
// Every failure mode collapses to ErrInvalidCredentials so the response
// never reveals whether the email exists.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrUserNotFound) {
			return nil, nil, entity.ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if !user.IsActive || !helpers.CompareHashAndPassword(user.Password, password) {
		return nil, nil, entity.ErrInvalidCredentials
	}

	pair, err := s.openSession(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the token pair for a still-live session. The session key
// must exist in Redis; a revoked session cannot be refreshed.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}
	var sess Session
	found, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(claims.SessionID), &sess)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, entity.ErrInvalidCredentials
	}
	return s.mintPair(sess.UserID, claims.SessionID, sess.IsStaff, sess.IsSuperuser)
}

// Logout revokes the session server-side.
func (s *UserService) Logout(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID)).Err()
}

// Session fetches the live session for middleware. found=false means the
// token outlived its session.
func (s *UserService) Session(ctx context.Context, sessionID string) (*Session, bool, error) {
	var sess Session
	found, err := helpers.RedisGetJSON(ctx, s.rdb, sessionKey(sessionID), &sess)
	if err != nil || !found {
		return nil, false, err
	}
	return &sess, true, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return s.users.GetByID(ctx, id)
}

// ListUsers returns every user, newest first. Staff only.
func (s *UserService) ListUsers(ctx context.Context, actor *entity.User) ([]*entity.User, error) {
	if !s.policy.Can(actor, ActionView, ResourceUser) {
		return nil, entity.ErrNotPermitted
	}
	return s.users.List(ctx)
}

// DeleteUser removes a user and their search document. Superuser only.
func (s *UserService) DeleteUser(ctx context.Context, actor *entity.User, id string) error {
	if !s.policy.Can(actor, ActionDelete, ResourceUser) {
		return entity.ErrNotPermitted
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	if s.es != nil {
		res, err := s.es.Delete(s.esIndex, id, s.es.Delete.WithContext(ctx))
		if err != nil {
			s.logger.WithError(err).WithField("user_id", id).Warn("search index delete failed")
		} else {
			_ = res.Body.Close()
		}
	}
	return nil
}

// IndexUser writes the user's search document. Best effort: directory
// search lagging behind the database is acceptable, login is not.
func (s *UserService) IndexUser(ctx context.Context, u *entity.User) {
	if s.es == nil {
		return
	}
	doc := UserDoc{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName(),
		IsStaff:  u.IsStaff,
		JoinedAt: u.JoinedAt,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		s.logger.WithError(err).Warn("user doc marshal failed")
		return
	}
	res, err := s.es.Index(s.esIndex, bytes.NewReader(body),
		s.es.Index.WithDocumentID(u.ID),
		s.es.Index.WithContext(ctx),
	)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", u.ID).Warn("user indexing failed")
		return
	}
	defer res.Body.Close()
	if res.IsError() {
		s.logger.WithField("status", res.StatusCode).Warn("user indexing rejected")
	}
}

// SearchUsers runs a fuzzy directory search over email and full name.
// Staff only.
func (s *UserService) SearchUsers(ctx context.Context, actor *entity.User, query string) ([]UserDoc, error) {
	if !s.policy.Can(actor, ActionView, ResourceUser) {
		return nil, entity.ErrNotPermitted
	}
	if s.es == nil {
		return nil, fmt.Errorf("user search is not configured")
	}

	q := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"email", "full_name"},
				"fuzziness": "AUTO",
			},
		},
		"size": 25,
	}
	body, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}

	res, err := s.es.Search(
		s.es.Search.WithContext(ctx),
		s.es.Search.WithIndex(s.esIndex),
		s.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("user search failed: %s", res.Status())
	}

	var out struct {
		Hits struct {
			Hits []struct {
				Source UserDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, err
	}
	docs := make([]UserDoc, 0, len(out.Hits.Hits))
	for _, h := range out.Hits.Hits {
		docs = append(docs, h.Source)
	}
	return docs, nil
}

func (s *UserService) openSession(ctx context.Context, user *entity.User) (*TokenPair, error) {
	sessionID := uuid.NewString()
	sess := Session{
		UserID:      user.ID,
		Email:       user.Email,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		CreatedAt:   time.Now(),
	}
	if err := helpers.RedisSetJSON(ctx, s.rdb, sessionKey(sessionID), sess, s.jwt.RefreshTTL); err != nil {
		return nil, err
	}
	return s.mintPair(user.ID, sessionID, user.IsStaff, user.IsSuperuser)
}

func (s *UserService) mintPair(userID, sessionID string, staff, super bool) (*TokenPair, error) {
	access, aexp, err := s.jwt.GenerateAccessToken(userID, sessionID, staff, super)
	if err != nil {
		return nil, err
	}
	refresh, rexp, err := s.jwt.GenerateRefreshToken(userID, sessionID, staff, super)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:         access,
		AccessExpires:  aexp,
		Refresh:        refresh,
		RefreshExpires: rexp,
		SessionID:      sessionID,
	}, nil
}
