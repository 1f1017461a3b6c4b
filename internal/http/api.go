package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskboard/internal/apperr"
	"taskboard/internal/auth"
	"taskboard/internal/domain"
	"taskboard/internal/service"
	"taskboard/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users     service.UserService
	tasks     service.TaskService
	tokens    *auth.TokenManager
	storage   storage.Service
	bucket    string
	keyPrefix string
	logger    *logrus.Logger
}

func NewHandler(
	users service.UserService,
	tasks service.TaskService,
	tokens *auth.TokenManager,
	store storage.Service,
	bucket, keyPrefix string,
	logger *logrus.Logger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:     users,
		tasks:     tasks,
		tokens:    tokens,
		storage:   store,
		bucket:    bucket,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authorized := router.Group("/", h.requireAuth())
	{
		authorized.POST("/task", h.createTask)
		authorized.GET("/tasks", h.listTasks)
		authorized.PUT("/tasks/:id", h.updateTask)
		authorized.DELETE("/tasks/:id", h.deleteTask)
		authorized.POST("/tasks/export", h.exportTasks)
		authorized.GET("/tasks/exports", h.listExports)
		authorized.DELETE("/tasks/exports", h.deleteExports)
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=30"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type createTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

type updateTaskRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed *bool  `json:"completed" binding:"required"`
}

type userView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token,omitempty"`
}

type taskView struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

type exportObjectView struct {
	Key          string  `json:"key"`
	Size         int64   `json:"size"`
	LastModified *string `json:"last_modified,omitempty"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	if _, err := h.users.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "user created successfully", nil)
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	user, token, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "login successful", userView{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

func (h *Handler) createTask(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}

	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), claims.UserID, req.Title)
	if err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusCreated, "task created successfully", taskToView(task))
}

func (h *Handler) listTasks(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}

	tasks, err := h.tasks.ListByUser(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}

	views := make([]taskView, len(tasks))
	for i := range tasks {
		views[i] = taskToView(&tasks[i])
	}
	respond(c, http.StatusOK, "tasks found", views)
}

func (h *Handler) updateTask(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, bindError(err))
		return
	}

	if _, err := h.tasks.Update(c.Request.Context(), claims.UserID, id, req.Title, *req.Completed); err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "task updated", nil)
}

func (h *Handler) deleteTask(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), claims.UserID, id); err != nil {
		h.fail(c, err)
		return
	}

	respond(c, http.StatusOK, "task deleted", nil)
}

func (h *Handler) exportTasks(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}
	if h.storage == nil || h.bucket == "" {
		h.fail(c, apperr.PreconditionFailed("storage is not configured"))
		return
	}

	payload, err := h.tasks.Snapshot(c.Request.Context(), claims.UserID)
	if err != nil {
		h.fail(c, err)
		return
	}

	key := fmt.Sprintf("%s/tasks-%s-%s.json",
		h.exportPrefix(claims.UserID),
		time.Now().UTC().Format("20060102T150405Z"),
		uuid.NewString()[:8],
	)
	location, err := h.storage.Upload(c.Request.Context(), h.bucket, key, bytes.NewReader(payload))
	if err != nil {
		h.fail(c, apperr.Internal(fmt.Errorf("upload export: %w", err)))
		return
	}

	respond(c, http.StatusCreated, "tasks exported", gin.H{"location": location})
}

func (h *Handler) listExports(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}
	if h.storage == nil || h.bucket == "" {
		h.fail(c, apperr.PreconditionFailed("storage is not configured"))
		return
	}

	objects, err := h.storage.ListObjects(c.Request.Context(), h.bucket, h.exportPrefix(claims.UserID))
	if err != nil {
		h.fail(c, apperr.Internal(fmt.Errorf("list exports: %w", err)))
		return
	}

	views := make([]exportObjectView, len(objects))
	for i, obj := range objects {
		views[i] = exportObjectView{
			Key:  obj.Key,
			Size: obj.Size,
		}
		if obj.LastModified != nil && !obj.LastModified.IsZero() {
			v := obj.LastModified.Format(time.RFC3339)
			views[i].LastModified = &v
		}
	}
	respond(c, http.StatusOK, "exports found", views)
}

func (h *Handler) deleteExports(c *gin.Context) {
	claims, ok := claimsFromContext(c)
	if !ok {
		h.fail(c, apperr.Unauthorized("no credentials supplied"))
		return
	}
	if h.storage == nil || h.bucket == "" {
		h.fail(c, apperr.PreconditionFailed("storage is not configured"))
		return
	}

	if err := h.storage.DeletePrefix(c.Request.Context(), h.bucket, h.exportPrefix(claims.UserID)); err != nil {
		h.fail(c, apperr.Internal(fmt.Errorf("delete exports: %w", err)))
		return
	}

	respond(c, http.StatusOK, "exports deleted", nil)
}

func (h *Handler) exportPrefix(userID int64) string {
	prefix := strings.Trim(h.keyPrefix, "/")
	if prefix == "" {
		return fmt.Sprintf("user-%d", userID)
	}
	return fmt.Sprintf("%s/user-%d", prefix, userID)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.BadRequest(`"id" must be a number`)
	}
	return id, nil
}

func taskToView(task *domain.Task) taskView {
	return taskView{
		ID:        task.ID,
		Title:     task.Title,
		Completed: task.Completed,
	}
}
