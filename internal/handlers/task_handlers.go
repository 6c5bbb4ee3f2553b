package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskboard/internal/logger"
	"taskboard/internal/models"
	"taskboard/internal/service"
)

type TaskHandler struct {
	service TaskService
}

func NewTaskHandler(svc TaskService) *TaskHandler {
	return &TaskHandler{service: svc}
}

// Routes mounts the task endpoints. The stats route registers before the
// {id} subtree so "stats" is not captured as an identifier.
func (h *TaskHandler) Routes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/stats", h.GetStats)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTaskByID)
			r.Put("/", h.UpdateTaskByID)
			r.Delete("/", h.DeleteTaskByID)
		})
	})

	r.Get("/health", h.HealthCheck)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	if !checkContentType(r, "application/json") {
		respondError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		logger.Warn("HTTP: malformed request body", zap.Error(err))
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if request.Title == "" {
		respondError(w, r, http.StatusBadRequest, "title is required")
		return
	}

	in := service.CreateTaskInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
	}
	var ok bool
	if in.Status, ok = parseStatus(request.Status); !ok {
		respondError(w, r, http.StatusBadRequest, "status must be TO_DO, DOING or DONE")
		return
	}
	if in.Priority, ok = parsePriority(request.Priority); !ok {
		respondError(w, r, http.StatusBadRequest, "priority must be LOW, MEDIUM or HIGH")
		return
	}

	task, err := h.service.Create(r.Context(), in)
	if err != nil {
		handleServiceError(w, r, err, "create_task")
		return
	}

	logger.Info("HTTP: task created", zap.String("task_id", task.ID.String()))
	respondSuccess(w, http.StatusCreated, "task created", task)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "perPage", 10)

	tasks, meta, err := h.service.List(r.Context(), page, perPage)
	if err != nil {
		handleServiceError(w, r, err, "list_tasks")
		return
	}

	respondPaginated(w, http.StatusOK, "tasks retrieved", tasks, meta)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		handleServiceError(w, r, err, "get_task")
		return
	}

	respondSuccess(w, http.StatusOK, "task retrieved", task)
}

func (h *TaskHandler) UpdateTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if !checkContentType(r, "application/json") {
		respondError(w, r, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return
	}

	var request UpdateTaskRequest
	decoder := json.NewDecoder(r.Body)
	// Reject fields outside the task contract, clients must not set
	// completedAt or timestamps directly.
	decoder.DisallowUnknownFields()
	defer r.Body.Close()

	if err := decoder.Decode(&request); err != nil {
		logger.Warn("HTTP: malformed update body", zap.Error(err))
		respondError(w, r, http.StatusBadRequest, "invalid fields in request body")
		return
	}

	in := service.UpdateTaskInput{
		Title:       request.Title,
		Description: request.Description,
		DueDate:     request.DueDate,
	}
	var valid bool
	if in.Status, valid = parseStatus(request.Status); !valid {
		respondError(w, r, http.StatusBadRequest, "status must be TO_DO, DOING or DONE")
		return
	}
	if in.Priority, valid = parsePriority(request.Priority); !valid {
		respondError(w, r, http.StatusBadRequest, "priority must be LOW, MEDIUM or HIGH")
		return
	}
	if in.Title != nil && *in.Title == "" {
		respondError(w, r, http.StatusBadRequest, "title cannot be empty")
		return
	}

	task, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		handleServiceError(w, r, err, "update_task")
		return
	}

	logger.Info("HTTP: task updated", zap.String("task_id", id.String()))
	respondSuccess(w, http.StatusOK, "task updated", task)
}

func (h *TaskHandler) DeleteTaskByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err, "delete_task")
		return
	}

	logger.Info("HTTP: task deleted", zap.String("task_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		handleServiceError(w, r, err, "get_stats")
		return
	}

	respondSuccess(w, http.StatusOK, "dashboard stats retrieved", stats)
}

func (h *TaskHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.service.HealthCheck(r.Context()); err != nil {
		logger.Error("HTTP: health check failed", err)
		respondError(w, r, http.StatusServiceUnavailable, "service unavailable")
		return
	}
	respondSuccess(w, http.StatusOK, "ok", nil)
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.Warn("HTTP: invalid task id", zap.Error(err))
		respondError(w, r, http.StatusBadRequest, "invalid task id")
		return uuid.Nil, false
	}
	return id, true
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}

func parseStatus(raw *string) (*models.Status, bool) {
	if raw == nil {
		return nil, true
	}
	status := models.Status(*raw)
	if !status.Valid() {
		return nil, false
	}
	return &status, true
}

func parsePriority(raw *string) (*models.Priority, bool) {
	if raw == nil {
		return nil, true
	}
	priority := models.Priority(*raw)
	if !priority.Valid() {
		return nil, false
	}
	return &priority, true
}
