package middlewares

import (
	"chart-service/internal/pkg/constvars"
	"chart-service/internal/pkg/exceptions"
	"chart-service/internal/pkg/utils"
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate requires a bearer token signed with the shared secret. The token subject
// becomes the workspace owner of the request.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			m.Log.Warn("Middlewares.Authenticate missing bearer token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix))
		owner, err := utils.ParseJWTSubject(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate rejected token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_WORKSPACE_OWNER_KEY, owner)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
