package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type JobApplicationHandler struct {
	applicationUC domain.JobApplicationUsecase
}

func NewJobApplicationHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, applicationUC domain.JobApplicationUsecase) {
	handler := &JobApplicationHandler{applicationUC: applicationUC}

	jobSeeker := protected.Group("/job_application")
	jobSeeker.Use(middleware.RequireRole(authUC, domain.RoleJobSeeker))
	{
		jobSeeker.GET("/my_applications", handler.MyApplications)
		jobSeeker.POST("/create/:id", handler.Apply)
	}

	public.GET("/job_application/:id", handler.Get)
}

// Apply godoc
// @Summary      Apply to a job listing
// @Description  One application per job seeker and listing; a second attempt fails with 400.
// @Tags         job_application
// @Produce      json
// @Param        id   path      int  true  "Listing ID"
// @Success      201  {object}  response.Response{data=domain.JobApplication}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job_application/create/{id} [post]
// @Security     BearerAuth
func (h *JobApplicationHandler) Apply(c *gin.Context) {
	listingID, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	app, err := h.applicationUC.Apply(c.Request.Context(), principal, listingID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted successfully", app)
}

// MyApplications godoc
// @Summary      The calling job seeker's applications
// @Tags         job_application
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobApplication}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job_application/my_applications [get]
// @Security     BearerAuth
func (h *JobApplicationHandler) MyApplications(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	apps, err := h.applicationUC.MyApplications(c.Request.Context(), principal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if apps == nil {
		apps = []domain.JobApplication{}
	}
	response.Success(c, http.StatusOK, "Applications fetched successfully", apps)
}

// Get godoc
// @Summary      Get an application
// @Tags         job_application
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.JobApplication}
// @Failure      404  {object}  response.Response
// @Router       /job_application/{id} [get]
func (h *JobApplicationHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	app, err := h.applicationUC.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application fetched successfully", app)
}
