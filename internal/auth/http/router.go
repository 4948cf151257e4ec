package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/adilbekov/notekeeper/internal/auth/guard"
	"github.com/adilbekov/notekeeper/internal/auth/service"
	commonerrors "github.com/adilbekov/notekeeper/internal/common/errors"
	commonhttp "github.com/adilbekov/notekeeper/internal/common/http"
	"github.com/adilbekov/notekeeper/internal/common/logger"
	userdomain "github.com/adilbekov/notekeeper/internal/user/domain"
)

type createAccountRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	CreatedOn time.Time `json:"createdOn"`
}

type createAccountResponse struct {
	Error       bool        `json:"error"`
	User        userPayload `json:"user"`
	AccessToken string      `json:"accessToken"`
	Message     string      `json:"message"`
}

type loginResponse struct {
	Error       bool   `json:"error"`
	Message     string `json:"message"`
	Email       string `json:"email"`
	AccessToken string `json:"accessToken"`
}

type getUserResponse struct {
	User    userPayload `json:"user"`
	Message string      `json:"message"`
}

type Handler struct {
	auth    *service.AuthService
	guard   *guard.Guard
	log     *logger.Logger
	timeout time.Duration
}

func NewHandler(auth *service.AuthService, g *guard.Guard, timeout time.Duration, log *logger.Logger) *Handler {
	return &Handler{auth: auth, guard: g, log: log, timeout: timeout}
}

// Register mounts the credential routes. Signup and login are open; the
// profile lookup sits behind the guard.
func (h *Handler) Register(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.timeout)
	mux.Handle("POST /create-account", withTimeout(h.createAccount))
	mux.Handle("POST /login", withTimeout(h.login))
	mux.Handle("GET /get-user", h.guard.Middleware()(withTimeout(h.getUser)))
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("create account failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.auth.Register(r.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, createAccountResponse{
		Error:       false,
		User:        toUserPayload(result.User),
		AccessToken: result.AccessToken,
		Message:     "Registration Successful",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := commonhttp.DecodeJSON(r, &req); err != nil {
		h.log.Warnf("login failed: invalid json: %v", err)
		commonhttp.WriteError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := h.auth.Login(r.Context(), service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, loginResponse{
		Error:       false,
		Message:     "Login Successful",
		Email:       result.Email,
		AccessToken: result.AccessToken,
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	identity, ok := guard.FromContext(r.Context())
	if !ok {
		commonhttp.WriteStatus(w, http.StatusUnauthorized)
		return
	}

	user, err := h.auth.GetUser(r.Context(), identity.UserID)
	if err != nil {
		// A stale token whose subject was deleted is unauthenticated, not 404.
		if errors.Is(err, service.ErrUserNotFound) {
			commonhttp.WriteStatus(w, http.StatusUnauthorized)
			return
		}
		h.writeError(w, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, getUserResponse{
		User:    toUserPayload(user),
		Message: "",
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		if domainErr.Category() == commonerrors.CategoryInternal {
			h.log.Errorf("auth handler internal error: %v", err)
			commonhttp.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		commonhttp.WriteError(w, domainErr.HTTPStatus(), domainErr.Message())
		return
	}

	h.log.Errorf("auth handler unhandled error: %v", err)
	commonhttp.WriteError(w, http.StatusInternalServerError, "Internal Server Error")
}

func toUserPayload(user userdomain.User) userPayload {
	return userPayload{
		ID:        string(user.ID),
		FullName:  user.FullName,
		Email:     user.Email,
		CreatedOn: user.CreatedAt,
	}
}
