package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"postboard/app/controllers"
	"postboard/app/middleware"
	"postboard/app/repositories"
	"postboard/app/services"
)

// SetupRoutes defines the application's routes on top of store and returns a router.
// A nil metrics disables both the metrics middleware and /metrics.
func SetupRoutes(store repositories.Store, log *slog.Logger, metrics *middleware.Metrics) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	chain := []mux.MiddlewareFunc{
		middleware.RequestID,
		middleware.Logger(log),
		middleware.Recoverer(log),
		middleware.ContentTypeJSON,
	}
	if metrics != nil {
		chain = append(chain, metrics.Middleware)
		router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	router.Use(chain...)

	// router.Use only wraps matched routes.
	router.NotFoundHandler = wrap(jsonStatus(http.StatusNotFound), chain)
	router.MethodNotAllowedHandler = wrap(jsonStatus(http.StatusMethodNotAllowed), chain)

	userController := controllers.NewUserController(services.NewUserService(store, log), log)
	postController := controllers.NewPostController(services.NewPostService(store, log), log)
	commentController := controllers.NewCommentController(services.NewCommentService(store, log), log)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	// Users; /email is registered before /{id} so it is not read as an id.
	users := api.PathPrefix("/user").Subrouter()
	users.HandleFunc("", userController.Index).Methods(http.MethodGet)
	users.HandleFunc("/email", userController.ShowByEmail).Methods(http.MethodGet)
	users.HandleFunc("/create-user", userController.Create).Methods(http.MethodPost)
	users.HandleFunc("/{id}", userController.Show).Methods(http.MethodGet)
	users.HandleFunc("/{id}", userController.Update).Methods(http.MethodPut)
	users.HandleFunc("/{id}", userController.Delete).Methods(http.MethodDelete)

	// Posts
	posts := api.PathPrefix("/post").Subrouter()
	posts.HandleFunc("", postController.Index).Methods(http.MethodGet)
	posts.HandleFunc("/user/{userId}", postController.IndexByUser).Methods(http.MethodGet)
	posts.HandleFunc("/user/{userId}", postController.CreateForUser).Methods(http.MethodPost)
	posts.HandleFunc("/user/{userId}", postController.UpdateForUser).Methods(http.MethodPut)
	posts.HandleFunc("/{id}", postController.Show).Methods(http.MethodGet)
	posts.HandleFunc("/{id}", postController.Update).Methods(http.MethodPut)
	posts.HandleFunc("/{id}", postController.Delete).Methods(http.MethodDelete)

	// Comments
	comments := api.PathPrefix("/comment").Subrouter()
	comments.HandleFunc("", commentController.Index).Methods(http.MethodGet)
	comments.HandleFunc("", commentController.Create).Methods(http.MethodPost)
	comments.HandleFunc("/{postId}", commentController.IndexByPost).Methods(http.MethodGet)
	comments.HandleFunc("/{id}", commentController.Delete).Methods(http.MethodDelete)

	return router
}

// wrap applies chain in the order router.Use would.
func wrap(h http.Handler, chain []mux.MiddlewareFunc) http.Handler {
	for i := len(chain) - 1; i >= 0; i-- {
		h = chain[i](h)
	}
	return h
}

func jsonStatus(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": http.StatusText(status)})
	})
}
