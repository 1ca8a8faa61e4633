package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"workshop-service/internal/domain/entity"
	"workshop-service/internal/usecase"
	"workshop-service/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WorkshopHandler serves the sheet add-on endpoints
type WorkshopHandler struct {
	operations *usecase.OperationManager
	dispatcher *usecase.Dispatcher
	logger     logger.Logger
}

// NewWorkshopHandler creates a new handler
func NewWorkshopHandler(operations *usecase.OperationManager, dispatcher *usecase.Dispatcher, logger logger.Logger) *WorkshopHandler {
	return &WorkshopHandler{
		operations: operations,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

type commandRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

// Ping answers liveness checks from the add-on
func (h *WorkshopHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "msg": "pong"})
}

// UpdateOperation applies a direct operation edit and logs the payload
func (h *WorkshopHandler) UpdateOperation(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		AbortWithError(c, http.StatusBadRequest, CodeBadRequest, "No JSON data received")
		return
	}

	update, err := entity.ParseOperationUpdate(raw)
	if err != nil {
		AbortWithError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	result, err := h.operations.ApplyOperationUpdate(c.Request.Context(), update)
	if err != nil {
		h.logger.Error("Failed to apply operation update", "error", err)
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"data_received": json.RawMessage(raw),
		"applied":       result.Applied,
		"reason":        result.Reason,
	})
}

// GetJobCard returns one stored job card
func (h *WorkshopHandler) GetJobCard(c *gin.Context) {
	card, err := h.operations.GetJobCard(c.Request.Context(), c.Param("driveId"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": card})
}

// GetOperation returns one operation record of a stored job card
func (h *WorkshopHandler) GetOperation(c *gin.Context) {
	rec, err := h.operations.GetOperation(c.Request.Context(), c.Param("driveId"), c.Param("operation"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": rec})
}

// Go runs one add-on action
func (h *WorkshopHandler) Go(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, http.StatusBadRequest, CodeBadRequest, "No JSON data received")
		return
	}

	cmd, err := usecase.ParseCommand(req.Action, req.Data)
	if err != nil {
		if errors.Is(err, usecase.ErrUnknownAction) {
			AbortWithError(c, http.StatusBadRequest, CodeBadRequest, "Invalid or missing action")
			return
		}
		AbortWithError(c, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}

	result, err := h.dispatcher.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		h.logger.Error("Action failed", "action", req.Action, "error", err)
		writeError(c, err)
		return
	}

	resp := gin.H{"status": "success", "action": req.Action}
	if result != nil {
		resp["result"] = result
	}
	c.JSON(http.StatusOK, resp)
}
