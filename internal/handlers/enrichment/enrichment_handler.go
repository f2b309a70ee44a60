// internal/handlers/enrichment/enrichment_handler.go
package enrichment

import (
	"io"
	"net/http"

	"llamacrm-service/internal/pkg/response"
	"llamacrm-service/internal/service/enrichment"
	leadsvc "llamacrm-service/internal/service/lead"

	"github.com/gin-gonic/gin"
)

// maxScreenshotBytes caps uploaded chat screenshots.
const maxScreenshotBytes = 8 << 20

type EnrichmentHandler struct {
	enrichService *enrichment.Service
	store         *leadsvc.Store
}

func NewEnrichmentHandler(enrichService *enrichment.Service, store *leadsvc.Store) *EnrichmentHandler {
	return &EnrichmentHandler{
		enrichService: enrichService,
		store:         store,
	}
}

// GenerateStrategy produces a closing strategy for one lead. The text
// is returned to the requesting view only and is not persisted.
func (h *EnrichmentHandler) GenerateStrategy(c *gin.Context) {
	l, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "lead not found")
		return
	}

	text, err := h.enrichService.GenerateStrategy(c.Request.Context(), l)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "strategy generation failed", err)
		return
	}

	response.Success(c, http.StatusOK, "strategy generated", gin.H{"strategy": text})
}

// AnalyzeChat accepts a chat screenshot, analyzes it against the lead
// and persists the result to the lead's chat_analysis field through
// the normal optimistic update path.
func (h *EnrichmentHandler) AnalyzeChat(c *gin.Context) {
	l, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "lead not found")
		return
	}

	fileHeader, err := c.FormFile("screenshot")
	if err != nil {
		response.ValidationError(c, "missing screenshot file", err)
		return
	}
	if fileHeader.Size > maxScreenshotBytes {
		response.ValidationError(c, "screenshot too large", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read screenshot", err)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to read screenshot", err)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	text, err := h.enrichService.AnalyzeScreenshot(c.Request.Context(), image, mimeType, l)
	if err != nil {
		response.Error(c, http.StatusBadGateway, "chat analysis failed", err)
		return
	}

	updated, ok := h.store.SetChatAnalysis(l.ID, text)
	if !ok {
		// The lead vanished between read and write; the analysis is
		// still returned so the view can show it.
		response.Success(c, http.StatusOK, "chat analyzed", gin.H{"chat_analysis": text})
		return
	}

	response.Success(c, http.StatusOK, "chat analyzed", updated)
}
