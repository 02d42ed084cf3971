package middleware

import (
	"log"
	"net/http"
	"os"
	"strconv"
)

// corsDebug gates the verbose per-request CORS tracing; it is far too
// chatty for production traffic.
var corsDebug, _ = strconv.ParseBool(os.Getenv("DEBUG_CORS"))

func CORSDebugMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !corsDebug {
			next.ServeHTTP(w, r)
			return
		}

		log.Printf("[CORS Debug] Request from Origin: %s", r.Header.Get("Origin"))
		log.Printf("[CORS Debug] Request Method: %s", r.Method)

		next.ServeHTTP(w, r)

		log.Printf("[CORS Debug] Response Headers: %v", w.Header())
	})
}
