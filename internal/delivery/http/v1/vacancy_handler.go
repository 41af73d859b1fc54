package v1

import (
	"context"
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type VacancyHandler struct {
	vacancyUC     domain.VacancyUsecase
	applicationUC domain.ApplicationUsecase
}

// NewVacancyHandler registers vacancy routes
func NewVacancyHandler(public, protected *gin.RouterGroup, vacancyUC domain.VacancyUsecase, applicationUC domain.ApplicationUsecase, writes gin.HandlerFunc) {
	handler := &VacancyHandler{vacancyUC: vacancyUC, applicationUC: applicationUC}

	public.GET("/vacancies/:id", handler.GetVacancy)

	vacancies := protected.Group("/vacancies")
	{
		vacancies.POST("", writes, handler.CreateVacancy)
		vacancies.PATCH("/:id", writes, handler.UpdateVacancy)
		vacancies.POST("/:id/close", writes, handler.CloseVacancy)
		vacancies.POST("/:id/reopen", writes, handler.ReopenVacancy)
		vacancies.GET("/:id/applications", handler.ListVacancyApplications)

		// Catalogue maintenance bypasses ownership
		admin := vacancies.Group("/:id/technologies", middleware.RequireRole(domain.RoleAdmin))
		admin.POST("", handler.AttachTechnologies)
		admin.PUT("", handler.ReplaceTechnologies)
	}
}

// GetVacancy godoc
// @Summary      Get a vacancy
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=VacancyResponse}
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id} [get]
func (h *VacancyHandler) GetVacancy(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	v, err := h.vacancyUC.GetVacancy(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vacancy retrieved", newVacancyResponse(v))
}

// CreateVacancy godoc
// @Summary      Publish a vacancy
// @Description  Creates an open vacancy owned by the caller's employer profile. Technology names are canonicalised and created on first use.
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CreateVacancyInput  true  "Vacancy"
// @Success      201   {object}  response.Response{data=VacancyResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /vacancies [post]
// @Security     BearerAuth
func (h *VacancyHandler) CreateVacancy(c *gin.Context) {
	actor, err := middleware.CurrentPrincipal(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.CreateVacancyInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	v, err := h.vacancyUC.CreateVacancy(c.Request.Context(), actor, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Vacancy created", newVacancyResponse(v))
}

// UpdateVacancy godoc
// @Summary      Update a vacancy
// @Description  Partial update. An absent technology field keeps the associations; an empty list clears them.
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id    path      int                        true  "Vacancy ID"
// @Param        body  body      domain.UpdateVacancyInput  true  "Changes"
// @Success      200   {object}  response.Response{data=VacancyResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /vacancies/{id} [patch]
// @Security     BearerAuth
func (h *VacancyHandler) UpdateVacancy(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.UpdateVacancyInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	v, err := h.vacancyUC.UpdateVacancy(c.Request.Context(), actor, id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vacancy updated", newVacancyResponse(v))
}

// CloseVacancy godoc
// @Summary      Close a vacancy
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=VacancyResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/close [post]
// @Security     BearerAuth
func (h *VacancyHandler) CloseVacancy(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	v, err := h.vacancyUC.CloseVacancy(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vacancy closed", newVacancyResponse(v))
}

// ReopenVacancy godoc
// @Summary      Reopen a vacancy
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=VacancyResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/reopen [post]
// @Security     BearerAuth
func (h *VacancyHandler) ReopenVacancy(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	v, err := h.vacancyUC.ReopenVacancy(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Vacancy reopened", newVacancyResponse(v))
}

// ListVacancyApplications godoc
// @Summary      List applications for a vacancy
// @Description  Owner employer or admin only
// @Tags         vacancies
// @Produce      json
// @Param        id   path      int  true  "Vacancy ID"
// @Success      200  {object}  response.Response{data=[]ApplicationResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /vacancies/{id}/applications [get]
// @Security     BearerAuth
func (h *VacancyHandler) ListVacancyApplications(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListVacancyApplications(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", newApplicationResponses(apps))
}

// AttachTechnologies godoc
// @Summary      Attach technologies to a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Vacancy ID"
// @Param        body  body      TechnologiesRequest  true  "Technology names"
// @Success      200   {object}  response.Response{data=[]domain.Technology}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /vacancies/{id}/technologies [post]
// @Security     BearerAuth
func (h *VacancyHandler) AttachTechnologies(c *gin.Context) {
	h.technologies(c, h.vacancyUC.AttachTechnologies)
}

// ReplaceTechnologies godoc
// @Summary      Replace the technologies of a vacancy
// @Tags         vacancies
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Vacancy ID"
// @Param        body  body      TechnologiesRequest  true  "Technology names"
// @Success      200   {object}  response.Response{data=[]domain.Technology}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /vacancies/{id}/technologies [put]
// @Security     BearerAuth
func (h *VacancyHandler) ReplaceTechnologies(c *gin.Context) {
	h.technologies(c, h.vacancyUC.ReplaceTechnologies)
}

type technologiesFunc func(ctx context.Context, vacancyID int64, names []string) ([]domain.Technology, error)

func (h *VacancyHandler) technologies(c *gin.Context, fn technologiesFunc) {
	id, err := parseID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req TechnologiesRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	techs, err := fn(c.Request.Context(), id, req.Technologies)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Technologies updated", techs)
}
