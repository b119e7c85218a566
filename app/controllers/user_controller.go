package controllers

import (
	"log/slog"
	"net/http"

	"postboard/app/dto"
	"postboard/app/services"
)

// UserController handles HTTP requests for users
type UserController struct {
	users *services.UserService
	log   *slog.Logger
}

// NewUserController creates a new UserController
func NewUserController(users *services.UserService, log *slog.Logger) *UserController {
	return &UserController{users: users, log: log}
}

// Index lists every user.
func (uc *UserController) Index(w http.ResponseWriter, r *http.Request) {
	users, err := uc.users.ListUsers(r.Context())
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromUsers(users))
}

func (uc *UserController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	user, err := uc.users.GetUser(r.Context(), id)
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromUser(user))
}

// ShowByEmail looks a user up by the email query parameter.
func (uc *UserController) ShowByEmail(w http.ResponseWriter, r *http.Request) {
	user, err := uc.users.GetUserByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromUser(user))
}

func (uc *UserController) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	user, err := uc.users.CreateUser(r.Context(), &req)
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromUser(user))
}

func (uc *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	var req dto.UserRequest
	if err := decodeJSON(r, &req); err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	user, err := uc.users.UpdateUser(r.Context(), id, &req)
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendJSON(w, http.StatusOK, dto.FromUser(user))
}

func (uc *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	if err := uc.users.DeleteUser(r.Context(), id); err != nil {
		sendError(w, r, uc.log, err)
		return
	}
	sendOK(w)
}
