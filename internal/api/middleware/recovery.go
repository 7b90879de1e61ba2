package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sentinelos/engine/pkg/logger"
	"go.uber.org/zap"
)

// Recovery logs panics and answers 500 with the error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				writeStatus(w, r, http.StatusInternalServerError, "internal", http.StatusText(http.StatusInternalServerError))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
