package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dreluiss/pulseon-mobile-evolve/internal/models"
	"github.com/dreluiss/pulseon-mobile-evolve/internal/repository"
	"github.com/dreluiss/pulseon-mobile-evolve/pkg/utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	MinPasswordLength = 8
	resetTokenTTL     = time.Hour
)

type userStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type authSessionStore interface {
	Create(ctx context.Context, session *models.AuthSession) error
	GetByID(ctx context.Context, id string) (*models.AuthSession, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

type passwordResetStore interface {
	Create(ctx context.Context, reset *models.PasswordReset) error
}

type SessionListener func(event models.SessionEvent)

// Session is what a successful sign-up or sign-in hands back to the client.
type Session struct {
	Token     string       `json:"access_token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

type SessionConfig struct {
	JWTSecret        string
	SessionTTL       time.Duration
	PasswordResetURL string
}

// SessionService owns the account and session lifecycle and notifies
// subscribers of every change.
type SessionService struct {
	db          repository.TxBeginner
	userRepo    userStore
	sessionRepo authSessionStore
	resetRepo   passwordResetStore
	mailer      Mailer
	cfg         SessionConfig
	now         func() time.Time

	mu           sync.RWMutex
	listeners    map[int]SessionListener
	nextListener int
}

func NewSessionService(
	db repository.TxBeginner,
	userRepo userStore,
	sessionRepo authSessionStore,
	resetRepo passwordResetStore,
	mailer Mailer,
	cfg SessionConfig,
) *SessionService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = utils.DefaultTokenTTL
	}
	if mailer == nil {
		mailer = LogMailer{}
	}
	return &SessionService{
		db:          db,
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		resetRepo:   resetRepo,
		mailer:      mailer,
		cfg:         cfg,
		now:         time.Now,
		listeners:   make(map[int]SessionListener),
	}
}

// Subscribe registers listener for session events. The returned function
// removes it and is safe to call more than once.
func (s *SessionService) Subscribe(listener SessionListener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *SessionService) SignUp(ctx context.Context, email, password, name string) (*Session, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        normalized,
		PasswordHash: hashed,
	}
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		user.Name = &trimmed
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.openSession(ctx, user)
}

func (s *SessionService) SignIn(ctx context.Context, email, password string) (*Session, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.openSession(ctx, user)
}

func (s *SessionService) SignOut(ctx context.Context, identity *models.Identity) error {
	if identity == nil || identity.SessionID == "" {
		return ErrInvalidSession
	}
	at := s.now()
	if err := s.sessionRepo.Revoke(ctx, identity.SessionID, at); err != nil {
		return err
	}
	s.emit(models.SessionEvent{
		Type:      models.SessionSignedOut,
		UserID:    identity.UserID,
		SessionID: identity.SessionID,
		At:        at,
	})
	return nil
}

// Resolve maps a bearer token to the caller. A token whose session row was
// revoked or has expired no longer resolves.
func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := utils.ValidateToken(token, s.cfg.JWTSecret)
	if err != nil {
		return nil, ErrInvalidSession
	}
	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return nil, ErrInvalidSession
	}
	if _, err := uuid.Parse(claims.SessionID()); err != nil {
		return nil, ErrInvalidSession
	}

	session, err := s.sessionRepo.GetByID(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if session.UserID != userID || !session.Active(s.now()) {
		return nil, ErrInvalidSession
	}

	return &models.Identity{
		UserID:    userID,
		Email:     claims.Email,
		SessionID: session.ID,
	}, nil
}

func (s *SessionService) CurrentUser(ctx context.Context, identity *models.Identity) (*models.User, error) {
	if identity == nil {
		return nil, ErrInvalidSession
	}
	return s.userRepo.GetByID(ctx, identity.UserID)
}

// RequestPasswordReset mails a recovery link when the address belongs to an
// account. Unknown addresses succeed silently.
func (s *SessionService) RequestPasswordReset(ctx context.Context, email string) error {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return err
	}

	token, err := newResetToken()
	if err != nil {
		return err
	}
	reset := &models.PasswordReset{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: hashResetToken(token),
		ExpiresAt: s.now().Add(resetTokenTTL),
	}
	if err := s.resetRepo.Create(ctx, reset); err != nil {
		return err
	}

	link, err := buildResetLink(s.cfg.PasswordResetURL, token)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, link)
}

// ResetPassword consumes a recovery token, sets the new password and revokes
// every open session of the account in one transaction.
func (s *SessionService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidResetToken
	}
	if len(newPassword) < MinPasswordLength {
		return ErrWeakPassword
	}
	if s.db == nil {
		return errors.New("password reset requires a database")
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	at := s.now()
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	reset, err := repository.NewPasswordResetRepository(tx).ConsumeActive(ctx, hashResetToken(token), at)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidResetToken
		}
		return err
	}
	if err := repository.NewUserRepository(tx).UpdatePassword(ctx, reset.UserID, hashed); err != nil {
		return err
	}
	if _, err := repository.NewAuthSessionRepository(tx).RevokeAllForUser(ctx, reset.UserID, at); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	s.emit(models.SessionEvent{
		Type:   models.SessionPasswordReset,
		UserID: reset.UserID,
		At:     at,
	})
	return nil
}

func (s *SessionService) openSession(ctx context.Context, user *models.User) (*Session, error) {
	now := s.now()
	session := &models.AuthSession{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	token, err := utils.GenerateToken(
		strconv.FormatInt(user.ID, 10),
		user.Email,
		session.ID,
		s.cfg.JWTSecret,
		s.cfg.SessionTTL,
	)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.emit(models.SessionEvent{
		Type:      models.SessionSignedIn,
		UserID:    user.ID,
		SessionID: session.ID,
		At:        now,
	})

	return &Session{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

func (s *SessionService) emit(event models.SessionEvent) {
	s.mu.RLock()
	listeners := make([]SessionListener, 0, len(s.listeners))
	for _, listener := range s.listeners {
		listeners = append(listeners, listener)
	}
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(event)
	}
}

// NormalizeEmail validates a bare address and lowercases it.
func NormalizeEmail(email string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(parsed.Address), nil
}

func newResetToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func buildResetLink(base, token string) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse reset url: %w", err)
	}
	query := parsed.Query()
	query.Set("token", token)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
