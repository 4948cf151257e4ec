package guard

import (
	"context"
	"net/http"
	"strings"

	"github.com/adilbekov/notekeeper/internal/auth/token"
	commonhttp "github.com/adilbekov/notekeeper/internal/common/http"
	"github.com/adilbekov/notekeeper/internal/common/logger"
)

// Identity is the resolved subject of a verified token.
type Identity struct {
	UserID string
}

// Decision is the explicit outcome of checking a request: either the request
// may proceed with an identity attached, or it is rejected with a reason.
type Decision struct {
	Allowed  bool
	Identity Identity
	Reason   string
}

func Allow(id Identity) Decision {
	return Decision{Allowed: true, Identity: id}
}

func Reject(reason string) Decision {
	return Decision{Reason: reason}
}

type contextKey string

const identityKey contextKey = "auth_identity"

// Guard gates protected routes on a valid bearer token. It never consults the
// credential store; subject existence is re-checked downstream where needed.
type Guard struct {
	tokens *token.Service
	log    *logger.Logger
}

func New(tokens *token.Service, log *logger.Logger) *Guard {
	return &Guard{tokens: tokens, log: log}
}

func (g *Guard) Check(r *http.Request) Decision {
	raw := r.Header.Get("Authorization")
	if raw == "" || !strings.HasPrefix(raw, "Bearer ") {
		return Reject("missing or malformed authorization header")
	}

	claims, err := g.tokens.Verify(strings.TrimPrefix(raw, "Bearer "))
	if err != nil {
		return Reject("invalid or expired token")
	}

	return Allow(Identity{UserID: claims.UserID})
}

// Middleware wraps a protected handler. Rejections answer 401 with no body.
func (g *Guard) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			decision := g.Check(r)
			if !decision.Allowed {
				g.log.Warnf("auth failed path=%s: %s", r.URL.Path, decision.Reason)
				commonhttp.WriteStatus(w, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, decision.Identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
