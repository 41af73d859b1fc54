package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase, writes gin.HandlerFunc) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	r.POST("/applications/:id/interviews", writes, handler.ScheduleInterview)
	r.GET("/applications/:id/interviews", handler.ListInterviews)
	r.PATCH("/interviews/:id", writes, handler.UpdateInterview)
}

// ScheduleInterview godoc
// @Summary      Schedule an interview
// @Description  Owner employer or admin; the application must still be active
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                            true  "Application ID"
// @Param        body  body      domain.ScheduleInterviewInput  true  "Interview"
// @Success      201   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /applications/{id}/interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.ScheduleInterviewInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	iv, err := h.interviewUC.ScheduleInterview(c.Request.Context(), actor, id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", iv)
}

// ListInterviews godoc
// @Summary      List interviews of an application
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=[]domain.Interview}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id}/interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListInterviews(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	ivs, err := h.interviewUC.ListInterviews(c.Request.Context(), actor, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interviews retrieved", ivs)
}

// UpdateInterview godoc
// @Summary      Update an interview
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id    path      int                           true  "Interview ID"
// @Param        body  body      domain.UpdateInterviewInput  true  "Changes"
// @Success      200   {object}  response.Response{data=domain.Interview}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /interviews/{id} [patch]
// @Security     BearerAuth
func (h *InterviewHandler) UpdateInterview(c *gin.Context) {
	actor, id, err := actorAndID(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var req domain.UpdateInterviewInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	iv, err := h.interviewUC.UpdateInterview(c.Request.Context(), actor, id, req)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview updated", iv)
}
