package service

import (
	"context"
	"errors"
	"time"

	"github.com/adilbekov/notekeeper/internal/auth/token"
	commoncrypto "github.com/adilbekov/notekeeper/internal/common/crypto"
	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	"github.com/adilbekov/notekeeper/internal/observability/metrics"
	userdomain "github.com/adilbekov/notekeeper/internal/user/domain"
	userrepo "github.com/adilbekov/notekeeper/internal/user/repository"
)

// AuthService owns the credential flows: account creation, login and the
// authenticated profile lookup.
type AuthService struct {
	users       userrepo.Repository
	tokens      *token.Service
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	now         func() time.Time
	log         *logger.Logger
}

func NewAuthService(
	users userrepo.Repository,
	tokens *token.Service,
	hasher commoncrypto.PasswordHasher,
	idGenerator commoncrypto.IDGenerator,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		tokens:      tokens,
		hasher:      hasher,
		idGenerator: idGenerator,
		now:         time.Now,
		log:         log,
	}
}

type RegisterInput struct {
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type RegisterResult struct {
	User        userdomain.User
	AccessToken string
}

type LoginResult struct {
	Email       string
	AccessToken string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (RegisterResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return RegisterResult{}, err
	}

	if _, err := s.users.FindByEmail(ctx, input.Email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_email_exists",
		}).Warn("register failed: email already registered")
		return RegisterResult{}, ErrUserAlreadyExists
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		// Lost the race against a concurrent signup with the same email.
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			return RegisterResult{}, ErrUserAlreadyExists
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	accessToken, err := s.tokens.Issue(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return RegisterResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.UsersRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return RegisterResult{User: user, AccessToken: accessToken}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "login_attempt",
	}).Info("login attempt")

	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_validation_failed",
		}).Warnf("login validation failed: %v", err)
		return LoginResult{}, err
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return LoginResult{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_invalid_password",
		}).Warn("login failed: invalid password")
		return LoginResult{}, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(string(user.ID))
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":   input.Email,
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return LoginResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	s.log.WithFields(ctx, logger.Fields{
		"email":   user.Email,
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return LoginResult{Email: user.Email, AccessToken: accessToken}, nil
}

// GetUser resolves an authenticated identity back to its user record. A
// subject that no longer exists (deleted after token issuance) reports
// ErrUserNotFound; the transport maps that to an unauthenticated response.
func (s *AuthService) GetUser(ctx context.Context, userID string) (userdomain.User, error) {
	user, err := s.users.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "get_user_not_found",
			}).Warn("get user failed: not found")
			return userdomain.User{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "get_user_fetch_failed",
		}).Errorf("get user failed: %v", err)
		return userdomain.User{}, commonerrors.ErrInternalError.WithCause(err)
	}

	return user, nil
}
