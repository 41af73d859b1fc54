package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase, writes gin.HandlerFunc) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := r.Group("/applications")
	{
		applications.POST("", writes, handler.CreateApplication)
		applications.GET("", handler.ListApplications)
		applications.GET("/:id", handler.GetApplication)
		applications.PATCH("/:id", writes, handler.UpdateApplication)
		applications.GET("/:id/history", handler.GetStatusHistory)
	}
}

// CreateApplication godoc
// @Summary      Apply to a vacancy
// @Description  Submits an application from the caller's employee profile. One application per employee and vacancy.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        body  body      CreateApplicationRequest  true  "Application data"
// @Success      201   {object}  response.Response{data=ApplicationResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /applications [post]
// @Security     BearerAuth
func (h *ApplicationHandler) CreateApplication(c *gin.Context) {
	actor, err := middleware.CurrentPrincipal(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req CreateApplicationRequest
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.CreateApplication(c.Request.Context(), actor, in)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", newApplicationResponse(app))
}

// ListApplications godoc
// @Summary      List my applications
// @Description  scope=employee lists submitted applications, scope=employer lists applications to owned vacancies
// @Tags         applications
// @Produce      json
// @Param        scope  query     string  false  "employee or employer"
// @Success      200    {object}  response.Response{data=[]ApplicationResponse}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	actor, err := middleware.CurrentPrincipal(c)
	if err != nil {
		c.Error(err)
		return
	}

	apps, err := h.applicationUC.ListApplications(c.Request.Context(), actor, domain.ApplicationScope(c.Query("scope")))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", newApplicationResponses(apps))
}

// GetApplication godoc
// @Summary      Get an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=ApplicationResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplication(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.GetApplication(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application retrieved", newApplicationResponse(app))
}

// UpdateApplication godoc
// @Summary      Update an application
// @Description  Changes status (with optional reason) and/or employer notes in one transaction
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                            true  "Application ID"
// @Param        body  body      domain.UpdateApplicationInput  true  "Changes"
// @Success      200   {object}  response.Response{data=ApplicationResponse}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplication(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.UpdateApplicationInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	app, err := h.applicationUC.UpdateApplication(c.Request.Context(), actor, id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application updated", newApplicationResponse(app))
}

// GetStatusHistory godoc
// @Summary      Status history of an application
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=[]domain.ApplicationStatusHistory}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/history [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetStatusHistory(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	history, err := h.applicationUC.GetStatusHistory(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "History retrieved", history)
}
