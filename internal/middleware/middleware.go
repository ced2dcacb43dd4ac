package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/rs/xid"

	handlers "socialfeed/internal/handler"
	"socialfeed/internal/identity"
)

type Middleware func(http.Handler) http.Handler

// AuthMiddleware проверяет credential через Identity Verifier и кладет
// проверенную личность в контекст запроса
func AuthMiddleware(verifier identity.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// лента и отдельный пост публичны, как и health
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				handlers.WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
				return
			}

			// checking the "Bearer <token>" format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				handlers.WriteError(w, "Неверный формат токена", http.StatusUnauthorized)
				return
			}

			ident, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				handlers.WriteError(w, "Недействительный токен", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.IdentityContextKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isPublicPath(r *http.Request) bool {
	if r.URL.Path == "/health" || r.URL.Path == "/" {
		return true
	}
	if r.Method == http.MethodOptions {
		return true
	}
	// GET /api/posts и GET /api/posts/{id}; PUT .../like остается закрытым
	if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/posts") {
		return true
	}
	return false
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := xid.New().String()
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("[%s] %s %s за %s", requestID, r.Method, r.RequestURI, time.Since(start))
	})
}

func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for _, m := range middlewares {
		h = m(h)
	}
	return h
}
