package controllers

import (
	"log/slog"
	"net/http"

	"postboard/app/dto"
	"postboard/app/services"
)

// PostController handles HTTP requests for posts
type PostController struct {
	posts *services.PostService
	log   *slog.Logger
}

// NewPostController creates a new PostController
func NewPostController(posts *services.PostService, log *slog.Logger) *PostController {
	return &PostController{posts: posts, log: log}
}

// Index handles listing all posts
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListPosts(r.Context())
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPosts(posts))
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	post, err := pc.posts.GetPost(r.Context(), id)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPost(post))
}

// IndexByUser lists the posts of one user.
func (pc *PostController) IndexByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	posts, err := pc.posts.ListUserPosts(r.Context(), userID)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPosts(posts))
}

// CreateForUser handles creating a new post owned by the path user
func (pc *PostController) CreateForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	post, err := pc.posts.CreatePost(r.Context(), userID, &req)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPost(post))
}

// UpdateForUser edits the post named in the body, which must belong to the path user.
func (pc *PostController) UpdateForUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	post, err := pc.posts.UpdateUserPost(r.Context(), userID, &req)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPost(post))
}

// Update handles updating a post's content
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	var req dto.PostRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	post, err := pc.posts.UpdatePost(r.Context(), id, &req)
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromPost(post))
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	if err := pc.posts.DeletePost(r.Context(), id); err != nil {
		sendError(w, r, pc.log, err)
		return
	}
	sendOK(w)
}
