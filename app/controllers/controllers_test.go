package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/app/logging"
	"postboard/app/repositories/mock"
	"postboard/app/services"
)

func setupRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := mock.NewStore()
	log := logging.Discard()
	uc := NewUserController(services.NewUserService(store, log), log)
	pc := NewPostController(services.NewPostService(store, log), log)
	cc := NewCommentController(services.NewCommentService(store, log), log)

	router := mux.NewRouter()
	router.HandleFunc("/users", uc.Create).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", uc.Show).Methods(http.MethodGet)
	router.HandleFunc("/users/{userId}/posts", pc.CreateForUser).Methods(http.MethodPost)
	router.HandleFunc("/posts/{id}", pc.Update).Methods(http.MethodPut)
	router.HandleFunc("/comments", cc.Create).Methods(http.MethodPost)
	router.HandleFunc("/comments/{postId}", cc.IndexByPost).Methods(http.MethodGet)
	return router
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestControllers(t *testing.T) {
	router := setupRouter(t)

	t.Run("create user", func(t *testing.T) {
		w := do(router, http.MethodPost, "/users", `{"name":"Ann","surname":"Lee","email":"ann@example.com","password":"12345678"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"name":"Ann","surname":"Lee","email":"ann@example.com","password":"12345678"}`, w.Body.String())
	})

	t.Run("bad id", func(t *testing.T) {
		w := do(router, http.MethodGet, "/users/abc", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(router, http.MethodPost, "/users", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Malformed JSON request"}`, w.Body.String())
	})

	t.Run("post and comment", func(t *testing.T) {
		w := do(router, http.MethodPost, "/users/1/posts", `{"content":"first"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"content":"first","userId":1}`, w.Body.String())

		w = do(router, http.MethodPut, "/posts/1", `{"content":"edited"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":1,"content":"edited","userId":1}`, w.Body.String())

		w = do(router, http.MethodPost, "/comments", `{"userId":1,"postId":1,"content":"nice"}`)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.JSONEq(t, `{"id":1,"content":"nice","postId":1,"userId":1}`, w.Body.String())

		w = do(router, http.MethodGet, "/comments/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		var comments []map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comments))
		assert.Len(t, comments, 1)
	})

	t.Run("comment validation", func(t *testing.T) {
		w := do(router, http.MethodPost, "/comments", `{"userId":0,"postId":1,"content":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"userId":"must be greater than 0"}`, w.Body.String())
	})
}
