package http

import (
	"net/http"

	applog "smartbudget/internal/log"
)

// handleWebSocket upgrades the connection and parks it in the realtime
// hub until the client or the server closes it.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := userIDFrom(ctx)

	if err := s.hub.Subscribe(ctx, w, r, userID); err != nil {
		applog.FromContext(ctx).WarnContext(ctx, "WebSocket session ended with error",
			applog.FieldUserID, userID, applog.FieldError, err)
	}
}
