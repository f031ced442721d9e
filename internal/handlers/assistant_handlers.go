package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tesseract-hub/property-service/internal/assistant"
	"github.com/tesseract-hub/property-service/internal/models"
)

// Ask answers a help question
// POST /api/v1/assistant/ask
func Ask(c *gin.Context) {
	var req models.AssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "message is required")
		return
	}

	answer := assistant.Ask(req.Message)
	respond(c, http.StatusOK, models.AssistantReply{
		Reply:   answer.Response,
		Matched: answer.Matched,
	})
}
