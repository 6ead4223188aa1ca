package handler

import (
	"time"

	"resourceshub/dto"
	"resourceshub/model"
	"resourceshub/usecase"
	"resourceshub/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type TodoHandler struct {
	service *usecase.TodosService
	log     zerolog.Logger
	now     func() time.Time
}

func NewTodoHandler(service *usecase.TodosService, log zerolog.Logger) *TodoHandler {
	return &TodoHandler{service: service, log: log.With().Str("handler", "todos").Logger(), now: time.Now}
}

// GetTodos handles GET /api/todos?status=all|completed|pending&q=.
func (h *TodoHandler) GetTodos(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	status := c.DefaultQuery("status", usecase.TodoStatusAll)

	todos, err := h.service.GetUserTodos(c.Request.Context(), user.ID, status, c.Query("q"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch todos")
		return
	}
	utils.Success(c, dto.ToTodoResponses(todos, h.now()))
}

func (h *TodoHandler) GetTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	todo, err := h.service.GetTodo(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to fetch todo")
		return
	}
	utils.Success(c, dto.ToTodoResponse(todo, h.now()))
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	todo := &model.Todo{
		UserID:          user.ID,
		Title:           req.Title,
		Description:     req.Description,
		Priority:        model.Priority(req.Priority),
		DueDate:         req.DueDate,
		RelatedRecordID: req.RelatedRecordID,
	}
	if err := h.service.CreateTodo(c.Request.Context(), todo); err != nil {
		respondError(c, h.log, err, "Failed to create todo")
		return
	}
	utils.Created(c, "Todo created successfully", dto.ToTodoResponse(todo, h.now()))
}

// UpdateTodo handles PUT /api/todos/:id as a partial update.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req dto.TodoPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	todo, err := h.service.UpdateTodo(c.Request.Context(), user.ID, c.Param("id"), req.ToModel())
	if err != nil {
		respondError(c, h.log, err, "Failed to update todo")
		return
	}
	utils.SuccessMessage(c, "Todo updated successfully", dto.ToTodoResponse(todo, h.now()))
}

func (h *TodoHandler) ToggleTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	todo, err := h.service.ToggleTodo(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err, "Failed to toggle todo")
		return
	}
	utils.Success(c, dto.ToTodoResponse(todo, h.now()))
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTodo(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		respondError(c, h.log, err, "Failed to delete todo")
		return
	}
	utils.SuccessMessage(c, "Todo deleted successfully", nil)
}
