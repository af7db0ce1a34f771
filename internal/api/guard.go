package api

import "net/http"

// requireInvoke gates tool invocations. Rate limiting fires first so floods
// are shed before token comparison; with no token configured, any caller may
// invoke.
func (s *Server) requireInvoke(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.invokeLimiter != nil && !s.invokeLimiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limited", "Too many invocations")
			return
		}

		if s.cfg.Token != "" {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || token != s.cfg.Token {
				writeError(w, http.StatusUnauthorized, "invalid token", "Provide a valid Bearer token")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			writeError(w, http.StatusMethodNotAllowed, "method not allowed", "")
			return
		}
		next(w, r)
	}
}
