package handlers

import (
	"github.com/gin-gonic/gin"

	"GuardHer/internal/models"
	"GuardHer/pkg/response"
)

func (h *Handlers) handleCreateSOS(context *gin.Context) {
	var req models.CreateSOSRequest
	if err := context.ShouldBindJSON(&req); err != nil {
		response.Fail(context, "invalid request body", gin.H{"error": err.Error()})
		return
	}
	if req.UserID == "" {
		response.Fail(context, "Missing field: userId", nil)
		return
	}
	if req.Location == nil {
		response.Fail(context, "Missing field: location", nil)
		return
	}
	if req.Severity == "" {
		response.Fail(context, "Missing field: severity", nil)
		return
	}

	session, err := h.sos.Create(context.Request.Context(), req.UserID, req.Location, req.Severity)
	if err != nil {
		response.Error(context, err)
		return
	}
	response.Created(context, "SOS session created successfully", session)
}

func (h *Handlers) handleUpdateSOS(context *gin.Context) {
	var req models.UpdateSOSRequest
	if err := context.ShouldBindJSON(&req); err != nil {
		response.Fail(context, "invalid request body", gin.H{"error": err.Error()})
		return
	}
	if req.SessionID == "" {
		response.Fail(context, "Missing field: sessionId", nil)
		return
	}

	session, err := h.sos.Update(context.Request.Context(), req.SessionID, req.Updates)
	if err != nil {
		response.Error(context, err)
		return
	}
	if session == nil {
		response.NotFound(context, "session not found or already resolved")
		return
	}
	response.Success(context, "SOS session updated", session)
}

func (h *Handlers) handleTrack(context *gin.Context) {
	userID := context.Param("userId")
	location := h.sos.Track(userID)
	if location == nil {
		// absent or expired entries yield an empty object, not a 404
		response.Success(context, "Live location fetched", gin.H{})
		return
	}
	response.Success(context, "Live location fetched", location)
}

func (h *Handlers) handleResolveSOS(context *gin.Context) {
	sessionID := context.Param("sessionId")
	session := h.sos.Resolve(context.Request.Context(), sessionID)
	if session == nil {
		response.NotFound(context, "session not found")
		return
	}
	response.Success(context, "SOS session resolved", session)
}

func (h *Handlers) handleAssignHelper(context *gin.Context) {
	sessionID := context.Param("sessionId")

	var req models.AssignHelperRequest
	if err := context.ShouldBindJSON(&req); err != nil || req.HelperID == "" {
		response.Fail(context, "Missing helperId", nil)
		return
	}

	session, err := h.sos.AssignHelper(context.Request.Context(), sessionID, req.HelperID)
	if err != nil {
		response.Error(context, err)
		return
	}
	if session == nil {
		response.NotFound(context, "session not found")
		return
	}
	response.Success(context, "Helper assigned successfully", session)
}

func (h *Handlers) handleRemoveHelper(context *gin.Context) {
	sessionID := context.Param("sessionId")
	helperID := context.Param("helperId")

	session := h.sos.RemoveHelper(context.Request.Context(), sessionID, helperID)
	if session == nil {
		response.NotFound(context, "session not found")
		return
	}
	response.Success(context, "Helper removed successfully", session)
}

func (h *Handlers) handleActiveSessions(context *gin.Context) {
	response.Success(context, "Active SOS sessions fetched", h.sos.ActiveSessions())
}
