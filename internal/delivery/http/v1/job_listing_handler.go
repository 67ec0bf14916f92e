package v1

import (
	"net/http"
	"strings"
	"time"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobListingHandler struct {
	listingUC domain.JobListingUsecase
}

func NewJobListingHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, listingUC domain.JobListingUsecase) {
	handler := &JobListingHandler{listingUC: listingUC}

	company := protected.Group("/job_listing")
	company.Use(middleware.RequireRole(authUC, domain.RoleCompany))
	{
		company.GET("/my_listings", handler.MyListings)
		company.POST("/create", handler.Create)
		company.PATCH("/update/:id", handler.Update)
		company.DELETE("/delete/:id", handler.Delete)
	}

	publicListings := public.Group("/job_listing")
	{
		publicListings.GET("", handler.List)
		publicListings.GET("/:id", handler.Get)
	}
}

const dateLayout = "2006-01-02"

type JobListingRequest struct {
	Title          string   `json:"title" binding:"required,min=2,max=150,no_emoji"`
	Description    string   `json:"description" binding:"required,max=5000"`
	SkillsRequired []string `json:"skills_required" binding:"required,min=1,max=50,dive,min=1,max=20"`
	Salary         float64  `json:"salary" binding:"gte=0"`
	Experience     string   `json:"experience" binding:"required,max=200"`
	StartDate      string   `json:"start_date" binding:"required"`
	Location       string   `json:"location" binding:"required,max=100,no_emoji"`
}

type JobListingPatchRequest struct {
	Title          *string  `json:"title" binding:"omitempty,min=2,max=150,no_emoji"`
	Description    *string  `json:"description" binding:"omitempty,max=5000"`
	SkillsRequired []string `json:"skills_required" binding:"omitempty,min=1,max=50,dive,min=1,max=20"`
	Salary         *float64 `json:"salary" binding:"omitempty,gte=0"`
	Experience     *string  `json:"experience" binding:"omitempty,max=200"`
	StartDate      *string  `json:"start_date"`
	Location       *string  `json:"location" binding:"omitempty,max=100,no_emoji"`
}

// parseStartDate accepts YYYY-MM-DD and full RFC 3339 timestamps.
func parseStartDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, apperror.Validation("Validation failed", []string{"Start date: must be a date in YYYY-MM-DD format"})
}

// List godoc
// @Summary      List job listings
// @Description  Public list, newest first. Filters match substrings case-insensitively.
// @Tags         job_listing
// @Produce      json
// @Param        title     query  string  false  "Title contains"
// @Param        location  query  string  false  "Location contains"
// @Param        skill     query  string  false  "Required skill"
// @Success      200  {object}  response.Response{data=[]domain.JobListing}
// @Router       /job_listing [get]
func (h *JobListingHandler) List(c *gin.Context) {
	listings, err := h.listingUC.List(c.Request.Context(), domain.JobListingFilter{
		Title:    c.Query("title"),
		Location: c.Query("location"),
		Skill:    c.Query("skill"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	if listings == nil {
		listings = []domain.JobListing{}
	}
	response.Success(c, http.StatusOK, "Job listings fetched successfully", listings)
}

// Get godoc
// @Summary      Get a job listing
// @Tags         job_listing
// @Produce      json
// @Param        id   path      int  true  "Listing ID"
// @Success      200  {object}  response.Response{data=domain.JobListing}
// @Failure      404  {object}  response.Response
// @Router       /job_listing/{id} [get]
func (h *JobListingHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	listing, err := h.listingUC.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job listing fetched successfully", listing)
}

// MyListings godoc
// @Summary      The calling company's listings
// @Description  Each listing carries its applications and the applicants' profiles with resume links.
// @Tags         job_listing
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.JobListingWithApplications}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job_listing/my_listings [get]
// @Security     BearerAuth
func (h *JobListingHandler) MyListings(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	listings, err := h.listingUC.MyListings(c.Request.Context(), principal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job listings fetched successfully", listings)
}

// Create godoc
// @Summary      Create a job listing
// @Tags         job_listing
// @Accept       json
// @Produce      json
// @Param        listing  body      JobListingRequest  true  "Listing"
// @Success      201      {object}  response.Response{data=domain.JobListing}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Router       /job_listing/create [post]
// @Security     BearerAuth
func (h *JobListingHandler) Create(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req JobListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	startDate, err := parseStartDate(req.StartDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	listing, err := h.listingUC.Create(c.Request.Context(), principal, domain.JobListingInput{
		Title:          req.Title,
		Description:    req.Description,
		SkillsRequired: req.SkillsRequired,
		Salary:         req.Salary,
		Experience:     req.Experience,
		StartDate:      startDate,
		Location:       req.Location,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Job listing created successfully", listing)
}

// Update godoc
// @Summary      Update a job listing
// @Description  Partial update by the owning company.
// @Tags         job_listing
// @Accept       json
// @Produce      json
// @Param        id       path      int                     true  "Listing ID"
// @Param        listing  body      JobListingPatchRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.JobListing}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /job_listing/update/{id} [patch]
// @Security     BearerAuth
func (h *JobListingHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req JobListingPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	patch := domain.JobListingPatch{
		Title:          req.Title,
		Description:    req.Description,
		SkillsRequired: req.SkillsRequired,
		Salary:         req.Salary,
		Experience:     req.Experience,
		Location:       req.Location,
	}
	if req.StartDate != nil {
		startDate, err := parseStartDate(*req.StartDate)
		if err != nil {
			_ = c.Error(err)
			return
		}
		patch.StartDate = &startDate
	}

	listing, err := h.listingUC.Update(c.Request.Context(), principal, id, patch)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job listing updated successfully", listing)
}

// Delete godoc
// @Summary      Delete a job listing
// @Description  Deleting a listing also deletes its applications.
// @Tags         job_listing
// @Produce      json
// @Param        id   path      int  true  "Listing ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job_listing/delete/{id} [delete]
// @Security     BearerAuth
func (h *JobListingHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		_ = c.Error(err)
		return
	}

	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.listingUC.Delete(c.Request.Context(), principal, id); err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job listing deleted successfully", nil)
}
