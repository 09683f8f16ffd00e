// Copyright (c) 2026 Taskora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package task

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/taskora/internal/platform/middleware"
	requestutil "github.com/taibuivan/taskora/internal/platform/request"
	"github.com/taibuivan/taskora/internal/platform/respond"
	"github.com/taibuivan/taskora/internal/platform/validate"
)

// Handler implements the task CRUD HTTP endpoints.
//
// Every route requires authentication; the owner for each operation always
// comes from the validated identity in the request context.
type Handler struct {
	taskService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{taskService: service}
}

// Routes returns a [chi.Router] configured with task CRUD routes.
//
// # Endpoints
//   - GET    /        : Lists the caller's tasks (optional ?category= filter).
//   - POST   /        : Creates a task owned by the caller.
//   - GET    /{id}    : Returns one task (404 if absent or foreign).
//   - PUT    /{id}    : Updates one task (404 if absent or foreign).
//   - DELETE /{id}    : Deletes one task (404 if absent or foreign).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Put("/{id}", handler.update)
	router.Delete("/{id}", handler.remove)

	return router
}

// # Request Payloads

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	Category    string `json:"category"`
}

func (payload taskRequest) toInput() Input {
	return Input{
		Title:       payload.Title,
		Description: payload.Description,
		IsCompleted: payload.IsCompleted,
		Category:    payload.Category,
	}
}

// taskID extracts and validates the {id} path parameter. A syntactically
// invalid ID is rejected before touching storage.
func taskID(request *http.Request) (string, error) {
	id := requestutil.ID(request, FieldID)

	validator := &validate.Validator{}
	if err := validator.UUID(FieldID, id).Err(); err != nil {
		return "", err
	}

	return id, nil
}

/*
List returns the caller's tasks.

GET /api/v1/tasks?category=work

Response:
  - 200: []Task: Owner-scoped list (possibly empty)
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := request.URL.Query().Get(FieldCategory)

	tasks, err := handler.taskService.List(request.Context(), ownerID, category)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tasks)
}

/*
Create persists a new task owned by the caller.

POST /api/v1/tasks

Request:
  - Body: taskRequest (Title, Description, IsCompleted, Category)

Response:
  - 201: Task: Created entity, owner stamped from the identity
  - 400: ErrInvalidJSON: Bad input or validation failure
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input taskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	created, err := handler.taskService.Create(request.Context(), ownerID, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, created)
}

/*
Get returns one of the caller's tasks.

GET /api/v1/tasks/{id}

Response:
  - 200: Task
  - 400: ErrValidation: Malformed task ID
  - 404: ErrNotFound: Absent or owned by someone else (indistinguishable)
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := taskID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	found, err := handler.taskService.Get(request.Context(), ownerID, id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, found)
}

/*
Update replaces the mutable fields of one of the caller's tasks.

PUT /api/v1/tasks/{id}

Request:
  - Body: taskRequest (Title, Description, IsCompleted, Category)

Response:
  - 200: Task: Updated entity
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 404: ErrNotFound: Absent or owned by someone else (indistinguishable)
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := taskID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input taskRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	updated, err := handler.taskService.Update(request.Context(), ownerID, id, input.toInput())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, updated)
}

/*
Remove deletes one of the caller's tasks.

DELETE /api/v1/tasks/{id}

Response:
  - 204: No Content
  - 400: ErrValidation: Malformed task ID
  - 404: ErrNotFound: Absent or owned by someone else (indistinguishable)
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := taskID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.taskService.Delete(request.Context(), ownerID, id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
