package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/blood_desk_app/internal/core/ports/services"
	"github.com/SscSPs/blood_desk_app/internal/dto"
	"github.com/SscSPs/blood_desk_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// donorHandler handles HTTP requests related to donors.
type donorHandler struct {
	donorService portssvc.DonorSvcFacade
}

func newDonorHandler(ds portssvc.DonorSvcFacade) *donorHandler {
	return &donorHandler{donorService: ds}
}

// registerDonorRoutes registers routes related to donors.
func registerDonorRoutes(rg *gin.RouterGroup, donorService portssvc.DonorSvcFacade) {
	h := newDonorHandler(donorService)

	donors := rg.Group("/donors")
	{
		donors.POST("", h.createDonor)
		donors.GET("", h.listDonors)
		donors.GET("/search", h.searchDonors)
		donors.GET("/:id", h.getDonor)
		donors.PUT("/:id", h.updateDonor)
		donors.DELETE("/:id", h.deleteDonor)
	}
}

// createDonor godoc
// @Summary Register a donor
// @Tags donors
// @Accept  json
// @Produce  json
// @Param   donor body dto.CreateDonorRequest true "Donor details"
// @Success 201 {object} dto.DonorEnvelope
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /donors [post]
func (h *donorHandler) createDonor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	donor, err := req.ToDomain()
	if err != nil {
		writeError(c, err, "Invalid donor")
		return
	}

	created, err := h.donorService.CreateDonor(c.Request.Context(), donor)
	if err != nil {
		writeError(c, err, "Failed to create donor")
		return
	}

	logger.Info("Donor created", slog.Int64("donor_id", created.DonorID))
	c.JSON(http.StatusCreated, dto.DonorEnvelope{Donor: dto.ToDonorResponse(*created)})
}

// listDonors godoc
// @Summary List donors
// @Description Most recently registered first.
// @Tags donors
// @Produce  json
// @Param   limit query int false "Maximum number of donors" default(500)
// @Success 200 {object} dto.DonorListEnvelope
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /donors [get]
func (h *donorHandler) listDonors(c *gin.Context) {
	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		writeBindError(c, err)
		return
	}

	donors, err := h.donorService.ListDonors(c.Request.Context(), params.Limit)
	if err != nil {
		writeError(c, err, "Failed to list donors")
		return
	}
	c.JSON(http.StatusOK, dto.DonorListEnvelope{Donors: dto.ToDonorListResponse(donors)})
}

// searchDonors godoc
// @Summary Search donors
// @Description Every supplied filter must match. Free text matches name, phone, email, address and area.
// @Tags donors
// @Produce  json
// @Param   q query string false "Free text"
// @Param   blood_group query string false "Blood group"
// @Param   area query string false "Area substring"
// @Param   age_min query int false "Minimum age"
// @Param   age_max query int false "Maximum age"
// @Param   last_after query string false "Last donation on or after (YYYY-MM-DD)"
// @Param   last_before query string false "Last donation on or before (YYYY-MM-DD)"
// @Success 200 {object} dto.DonorListEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /donors/search [get]
func (h *donorHandler) searchDonors(c *gin.Context) {
	var query dto.DonorSearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindError(c, err)
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		writeError(c, err, "Invalid search filter")
		return
	}

	donors, err := h.donorService.SearchDonors(c.Request.Context(), filter)
	if err != nil {
		writeError(c, err, "Failed to search donors")
		return
	}
	c.JSON(http.StatusOK, dto.DonorListEnvelope{Donors: dto.ToDonorListResponse(donors)})
}

// getDonor godoc
// @Summary Get a donor by ID
// @Tags donors
// @Produce  json
// @Param   id path int true "Donor ID"
// @Success 200 {object} dto.DonorEnvelope
// @Failure 404 {object} dto.ErrorResponse "Donor not found"
// @Security BearerAuth
// @Router /donors/{id} [get]
func (h *donorHandler) getDonor(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	donor, err := h.donorService.GetDonor(c.Request.Context(), id)
	if err != nil {
		writeError(c, err, "Failed to retrieve donor")
		return
	}
	c.JSON(http.StatusOK, dto.DonorEnvelope{Donor: dto.ToDonorResponse(*donor)})
}

// updateDonor godoc
// @Summary Update a donor
// @Description Partial update. Omitted fields are unchanged and null clears a nullable field.
// @Tags donors
// @Accept  json
// @Produce  json
// @Param   id path int true "Donor ID"
// @Param   donor body dto.UpdateDonorRequest true "Fields to change"
// @Success 200 {object} dto.DonorEnvelope
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /donors/{id} [put]
func (h *donorHandler) updateDonor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	patch, err := req.ToPatch()
	if err != nil {
		writeError(c, err, "Invalid donor update")
		return
	}

	updated, err := h.donorService.UpdateDonor(c.Request.Context(), id, patch)
	if err != nil {
		writeError(c, err, "Failed to update donor")
		return
	}

	logger.Info("Donor updated", slog.Int64("donor_id", id))
	c.JSON(http.StatusOK, dto.DonorEnvelope{Donor: dto.ToDonorResponse(*updated)})
}

// deleteDonor godoc
// @Summary Delete a donor
// @Tags donors
// @Produce  json
// @Param   id path int true "Donor ID"
// @Success 200 {object} dto.OKResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /donors/{id} [delete]
func (h *donorHandler) deleteDonor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.donorService.DeleteDonor(c.Request.Context(), id); err != nil {
		writeError(c, err, "Failed to delete donor")
		return
	}
	logger.Info("Donor deleted", slog.Int64("donor_id", id))
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}
