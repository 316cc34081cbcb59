package handlers

import (
	"github.com/gin-gonic/gin"

	"GuardHer/internal/models"
	"GuardHer/pkg/response"
)

func (h *Handlers) handleAnalyze(context *gin.Context) {
	var req models.AnalyzeRequest
	if err := context.ShouldBindJSON(&req); err != nil {
		response.Fail(context, "invalid request body", gin.H{"error": err.Error()})
		return
	}
	result, err := h.analysis.AnalyzeEvidence(req)
	if err != nil {
		response.Error(context, err)
		return
	}
	response.Success(context, "Evidence analyzed", result)
}

func (h *Handlers) handleAnalyzeBatch(context *gin.Context) {
	var reqs []models.AnalyzeRequest
	if err := context.ShouldBindJSON(&reqs); err != nil {
		response.Fail(context, "invalid request body", gin.H{"error": err.Error()})
		return
	}
	results, err := h.analysis.AnalyzeBatch(reqs)
	if err != nil {
		response.Error(context, err)
		return
	}
	response.Success(context, "Evidence batch analyzed", results)
}

func (h *Handlers) handleGetEvidence(context *gin.Context) {
	userID := context.Param("userId")
	response.Success(context, "Evidence fetched", h.evidence.ByUser(userID))
}

func (h *Handlers) handleDeleteEvidence(context *gin.Context) {
	id := context.Param("id")
	record := h.evidence.Delete(id)
	if record == nil {
		response.NotFound(context, "evidence not found")
		return
	}
	response.Success(context, "Evidence deleted", record)
}
