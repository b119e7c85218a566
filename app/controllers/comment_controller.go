package controllers

import (
	"log/slog"
	"net/http"

	"postboard/app/dto"
	"postboard/app/services"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	comments *services.CommentService
	log      *slog.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(comments *services.CommentService, log *slog.Logger) *CommentController {
	return &CommentController{comments: comments, log: log}
}

func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	comments, err := cc.comments.ListComments(r.Context())
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromComments(comments))
}

// IndexByPost lists comments on a post; unknown posts give an empty list.
func (cc *CommentController) IndexByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "postId")
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	comments, err := cc.comments.ListPostComments(r.Context(), postID)
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromComments(comments))
}

// Create handles creating a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CommentRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	comment, err := cc.comments.CreateComment(r.Context(), &req)
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendJSON(w, http.StatusCreated, dto.FromComment(comment))
}

// Delete handles deleting a comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	if err := cc.comments.DeleteComment(r.Context(), id); err != nil {
		sendError(w, r, cc.log, err)
		return
	}
	sendOK(w)
}
