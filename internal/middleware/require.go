package middleware

import "net/http"

// RequireUser corta con 401 si el request no trae claims resueltos.
// Se aplica a todo /api salvo los reads públicos del sitio.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaims(r.Context()); !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
