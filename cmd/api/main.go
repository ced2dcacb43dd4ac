package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"socialfeed/cmd/app"
	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/identity"
	"socialfeed/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, _, services := app.App(cfg)
	defer db.CloseDB()

	verifier := identity.NewJWTVerifier(cfg)
	handler := handlers.NewHandlers(services, cfg)

	// setting up routes
	router := mux.NewRouter()
	router.HandleFunc("/health", handlers.HealthHandler(db)).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/google", handler.GoogleAuth).Methods(http.MethodPost)
	api.HandleFunc("/me", handler.GetCurrentUser).Methods(http.MethodGet)
	api.HandleFunc("/profile", handler.GetProfile).Methods(http.MethodGet)
	api.HandleFunc("/profile", handler.UpdateProfile).Methods(http.MethodPut)

	api.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	api.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/posts/{id}", handler.UpdatePost).Methods(http.MethodPut)
	api.HandleFunc("/posts/{id}", handler.DeletePost).Methods(http.MethodDelete)
	api.HandleFunc("/posts/{id}/like", handler.ToggleLike).Methods(http.MethodPut)

	handlerChain := middleware.Chain(
		router,
		middleware.AuthMiddleware(verifier),
		middleware.CORSMiddleware,
		middleware.LoggingMiddleware,
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
