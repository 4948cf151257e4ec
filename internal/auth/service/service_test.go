package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/adilbekov/notekeeper/internal/auth/token"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	userdomain "github.com/adilbekov/notekeeper/internal/user/domain"
	userrepo "github.com/adilbekov/notekeeper/internal/user/repository"
)

const testSecret = "test-secret-key-at-least-32-bytes-long"

type mockUserRepo struct {
	createFn      func(ctx context.Context, user userdomain.User) error
	findByEmailFn func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFn    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) error {
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	return m.findByEmailFn(ctx, email)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	return m.findByIDFn(ctx, id)
}

type mockHasher struct{}

func (m *mockHasher) Hash(password string) (string, error) {
	return "hashed_" + password, nil
}

func (m *mockHasher) Compare(hash string, password string) error {
	if hash != "hashed_"+password {
		return errors.New("mismatch")
	}
	return nil
}

type mockIDGenerator struct {
	id string
}

func (m *mockIDGenerator) NewID() (string, error) {
	return m.id, nil
}

func newTestAuthService(t *testing.T, users userrepo.Repository) (*AuthService, *token.Service) {
	t.Helper()
	log, err := logger.New("", "test", "ERROR")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	tokens := token.NewService(testSecret, time.Hour)
	svc := NewAuthService(users, tokens, &mockHasher{}, &mockIDGenerator{id: "user-1"}, log)
	return svc, tokens
}

func TestRegister_Success(t *testing.T) {
	var created userdomain.User
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
		createFn: func(ctx context.Context, user userdomain.User) error {
			created = user
			return nil
		},
	}
	svc, tokens := newTestAuthService(t, users)

	result, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if created.PasswordHash != "hashed_secret" {
		t.Errorf("expected password stored hashed, got %q", created.PasswordHash)
	}
	if created.PasswordHash == "secret" {
		t.Error("plaintext password must never be stored")
	}
	if result.User.ID != "user-1" {
		t.Errorf("expected user id user-1, got %s", result.User.ID)
	}

	claims, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("expected verifiable token, got %v", err)
	}
	if claims.UserID != string(result.User.ID) {
		t.Errorf("expected token subject %s, got %s", result.User.ID, claims.UserID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	createCalled := false
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{ID: "existing", Email: email}, nil
		},
		createFn: func(ctx context.Context, user userdomain.User) error {
			createCalled = true
			return nil
		},
	}
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "secret",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
	if createCalled {
		t.Error("expected no create call for duplicate email")
	}
}

func TestRegister_DuplicateEmailRace(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
		createFn: func(ctx context.Context, user userdomain.User) error {
			return userrepo.ErrEmailAlreadyExists
		},
	}
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Test User",
		Email:    "test@example.com",
		Password: "secret",
	})
	if !errors.Is(err, ErrUserAlreadyExists) {
		t.Fatalf("expected ErrUserAlreadyExists, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			t.Fatal("expected no repository call on validation failure")
			return userdomain.User{}, nil
		},
	}
	svc, _ := newTestAuthService(t, users)

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{
			name:    "missing full name",
			input:   RegisterInput{Email: "test@example.com", Password: "secret"},
			wantErr: ErrFullNameRequired,
		},
		{
			name:    "missing email",
			input:   RegisterInput{FullName: "Test User", Password: "secret"},
			wantErr: ErrEmailRequired,
		},
		{
			name:    "invalid email",
			input:   RegisterInput{FullName: "Test User", Email: "not-an-email", Password: "secret"},
			wantErr: ErrEmailInvalid,
		},
		{
			name:    "missing password",
			input:   RegisterInput{FullName: "Test User", Email: "test@example.com"},
			wantErr: ErrPasswordRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLogin_Success(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: "hashed_secret",
			}, nil
		},
	}
	svc, tokens := newTestAuthService(t, users)

	result, err := svc.Login(context.Background(), LoginInput{
		Email:    "test@example.com",
		Password: "secret",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Email != "test@example.com" {
		t.Errorf("expected email echoed back, got %s", result.Email)
	}

	claims, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("expected verifiable token, got %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected token subject user-1, got %s", claims.UserID)
	}
}

func TestLogin_UserNotFound(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
	}
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "missing@example.com",
		Password: "secret",
	})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	users := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (userdomain.User, error) {
			return userdomain.User{
				ID:           "user-1",
				Email:        email,
				PasswordHash: "hashed_secret",
			}, nil
		},
	}
	svc, _ := newTestAuthService(t, users)

	_, err := svc.Login(context.Background(), LoginInput{
		Email:    "test@example.com",
		Password: "wrong",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetUser_StaleSubject(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
			return userdomain.User{}, userrepo.ErrUserNotFound
		},
	}
	svc, _ := newTestAuthService(t, users)

	_, err := svc.GetUser(context.Background(), "deleted-user")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestGetUser_Success(t *testing.T) {
	users := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
			return userdomain.User{
				ID:       id,
				FullName: "Test User",
				Email:    "test@example.com",
			}, nil
		},
	}
	svc, _ := newTestAuthService(t, users)

	user, err := svc.GetUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("expected user-1, got %s", user.ID)
	}
	if !strings.Contains(user.Email, "@") {
		t.Errorf("expected a populated email, got %q", user.Email)
	}
}
