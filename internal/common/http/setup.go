package http

import (
	"net/http"

	"github.com/adilbekov/notekeeper/internal/common/constants"
	"github.com/adilbekov/notekeeper/internal/common/httpmetrics"
	"github.com/adilbekov/notekeeper/internal/common/logger"
)

// BuildBaseHandler stacks the ambient middleware around the API handler:
// security headers -> CORS -> recovery -> trace id -> body limit -> metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(CORSMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler))))))
}
