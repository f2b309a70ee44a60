// internal/handlers/lead/lead_handler.go
package lead

import (
	"net/http"

	"llamacrm-service/internal/domain/lead"
	"llamacrm-service/internal/pkg/response"
	leadsvc "llamacrm-service/internal/service/lead"
	reportsvc "llamacrm-service/internal/service/report"

	"github.com/gin-gonic/gin"
)

type LeadHandler struct {
	store *leadsvc.Store
}

func NewLeadHandler(store *leadsvc.Store) *LeadHandler {
	return &LeadHandler{
		store: store,
	}
}

// ListLeads returns the collection narrowed by date range, then by the
// search query. All filtering happens on the in-memory snapshot.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	var filters lead.LeadListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.ValidationError(c, "invalid filters", err)
		return
	}

	leads := h.store.Snapshot()
	leads = reportsvc.FilterByRange(leads, reportsvc.DateRange(filters.Range), filters.Start, filters.End)
	leads = reportsvc.Search(leads, filters.Search)

	response.Success(c, http.StatusOK, "leads retrieved", lead.LeadListResponse{
		Leads: leads,
		Total: len(leads),
	})
}

// GetLead returns a single lead by id.
func (h *LeadHandler) GetLead(c *gin.Context) {
	l, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "lead not found")
		return
	}

	response.Success(c, http.StatusOK, "lead retrieved", l)
}

// CreateLead takes an intake draft, synthesizes id and created_at, and
// answers with the new record before the remote insert resolves.
func (h *LeadHandler) CreateLead(c *gin.Context) {
	var req lead.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	created := h.store.Add(&req)

	response.Success(c, http.StatusCreated, "lead created", created)
}

// UpdateLead replaces the matching record. The store treats an unknown
// id as a no-op; the HTTP surface reports it as 404 so the dashboard
// learns nothing matched.
func (h *LeadHandler) UpdateLead(c *gin.Context) {
	var req lead.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	updated, ok := h.store.Update(c.Param("id"), &req)
	if !ok {
		response.NotFound(c, "lead not found")
		return
	}

	response.Success(c, http.StatusOK, "lead updated", updated)
}

// ReloadLeads re-fetches the full collection from the remote table.
// This is the only re-sync path; a failure keeps the prior data.
func (h *LeadHandler) ReloadLeads(c *gin.Context) {
	if err := h.store.Load(c.Request.Context()); err != nil {
		response.Error(c, http.StatusServiceUnavailable, "reload failed; showing previous data", err)
		return
	}

	leads := h.store.Snapshot()
	response.Success(c, http.StatusOK, "leads reloaded", lead.LeadListResponse{
		Leads: leads,
		Total: len(leads),
	})
}

// SyncStatus reports the last unresolved sync condition, if any.
func (h *LeadHandler) SyncStatus(c *gin.Context) {
	syncErr := h.store.LastSyncError()
	if syncErr == nil {
		response.Success(c, http.StatusOK, "in sync", nil)
		return
	}

	response.Success(c, http.StatusOK, "sync degraded", gin.H{
		"op":      syncErr.Op,
		"message": syncErr.Message,
	})
}
