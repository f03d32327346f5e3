package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"wisewallet/backend/logger"
)

// Recover turns a panic into a 500 with a generic message.
func Recover(showDetail bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err := fmt.Errorf("panic: %v", rec)
				logger.FromContext(r.Context()).Error("handler panicked",
					"error", err, "stack", string(debug.Stack()))
				WriteError(w, http.StatusInternalServerError, "Something went wrong!", err, showDetail)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
