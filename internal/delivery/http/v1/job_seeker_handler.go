package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type JobSeekerHandler struct {
	authUC      domain.AuthUsecase
	jobSeekerUC domain.JobSeekerUsecase
	cookies     CookieOptions
	maxResume   int64
}

func NewJobSeekerHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, jobSeekerUC domain.JobSeekerUsecase, cookies CookieOptions, maxResume int64, limits RouteLimits) {
	handler := &JobSeekerHandler{
		authUC:      authUC,
		jobSeekerUC: jobSeekerUC,
		cookies:     cookies,
		maxResume:   maxResume,
	}

	publicJobSeeker := public.Group("/job_seeker")
	{
		publicJobSeeker.POST("/login", limits.Login, handler.Login)
		publicJobSeeker.POST("/register", limits.Login, limits.Upload, handler.Register)
		publicJobSeeker.POST("/logout", handler.Logout)
	}

	jobSeeker := protected.Group("/job_seeker")
	jobSeeker.Use(middleware.RequireRole(authUC, domain.RoleJobSeeker))
	{
		jobSeeker.GET("/current_job_seeker", handler.Current)
		jobSeeker.PATCH("/update_job_seeker_details/:id", limits.Upload, handler.Update)
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type JobSeekerRegisterRequest struct {
	Username   string   `form:"username" binding:"required,username"`
	Email      string   `form:"email" binding:"required,email,max=254"`
	Password   string   `form:"password" binding:"required,strong_password"`
	Education  string   `form:"education" binding:"required,max=500,no_emoji"`
	Experience string   `form:"experience" binding:"required,max=500,no_emoji"`
	Skills     []string `form:"skills" binding:"required,min=1,max=50,skill"`
}

type JobSeekerUpdateRequest struct {
	Education  string   `form:"education" binding:"required,max=500,no_emoji"`
	Experience string   `form:"experience" binding:"required,max=500,no_emoji"`
	Skills     []string `form:"skills" binding:"required,min=1,max=50,skill"`
}

// Login godoc
// @Summary      Job seeker login
// @Description  Verify email and password of a job seeker account. Sets the accessToken cookie.
// @Tags         job_seeker
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.Session}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /job_seeker/login [post]
func (h *JobSeekerHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	session, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, domain.RoleJobSeeker)
	if err != nil {
		_ = c.Error(err)
		return
	}

	// The resume link is a convenience on login; a signing failure must not
	// turn a valid login into an error.
	if withLink, err := h.jobSeekerUC.Current(c.Request.Context(), session.Principal); err == nil {
		session.Principal = withLink
	} else {
		logger.Log.Warn("Resume link unavailable at login", "account_id", session.Principal.ID, "error", err)
	}

	setAccessTokenCookie(c, session, h.cookies)
	response.Success(c, http.StatusOK, "User logged in successfully", session)
}

// Register godoc
// @Summary      Job seeker registration
// @Description  Create a job seeker account with profile and resume in one step. Sets the accessToken cookie.
// @Tags         job_seeker
// @Accept       multipart/form-data
// @Produce      json
// @Param        username    formData  string  true  "Username"
// @Param        email       formData  string  true  "Email"
// @Param        password    formData  string  true  "Password"
// @Param        education   formData  string  true  "Education"
// @Param        experience  formData  string  true  "Experience"
// @Param        skills      formData  []string  true  "Skills" collectionFormat(multi)
// @Param        resume      formData  file    true  "Resume (pdf, doc, docx, txt)"
// @Success      201  {object}  response.Response{data=domain.Session}
// @Failure      400  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /job_seeker/register [post]
func (h *JobSeekerHandler) Register(c *gin.Context) {
	req := JobSeekerRegisterRequest{
		Username:   c.PostForm("username"),
		Email:      c.PostForm("email"),
		Password:   c.PostForm("password"),
		Education:  c.PostForm("education"),
		Experience: c.PostForm("experience"),
		Skills:     formArray(c, "skills"),
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	resume, err := readAttachment(c, "resume", h.maxResume)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if resume == nil {
		_ = c.Error(apperror.BadRequest("Resume file is required"))
		return
	}

	session, err := h.jobSeekerUC.Register(c.Request.Context(), domain.JobSeekerRegistration{
		Username:   req.Username,
		Email:      req.Email,
		Password:   req.Password,
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
		Resume:     resume,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	setAccessTokenCookie(c, session, h.cookies)
	response.Success(c, http.StatusCreated, "User registered successfully", session)
}

// Logout godoc
// @Summary      Job seeker logout
// @Description  Revoke the current token and clear the accessToken cookie.
// @Tags         job_seeker
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /job_seeker/logout [post]
func (h *JobSeekerHandler) Logout(c *gin.Context) {
	logout(c, h.authUC, h.cookies)
}

// Current godoc
// @Summary      Current job seeker
// @Description  The authenticated job seeker with a fresh resume link.
// @Tags         job_seeker
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Principal}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /job_seeker/current_job_seeker [get]
// @Security     BearerAuth
func (h *JobSeekerHandler) Current(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	out, err := h.jobSeekerUC.Current(c.Request.Context(), principal)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job seeker fetched successfully", out)
}

// Update godoc
// @Summary      Update job seeker details
// @Description  Replace education, experience and skills. A new resume replaces the stored one.
// @Tags         job_seeker
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      int     true   "Job seeker ID"
// @Param        education   formData  string  true   "Education"
// @Param        experience  formData  string  true   "Experience"
// @Param        skills      formData  []string  true  "Skills" collectionFormat(multi)
// @Param        resume      formData  file    false  "New resume"
// @Success      200  {object}  response.Response{data=domain.JobSeekerProfile}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /job_seeker/update_job_seeker_details/{id} [patch]
// @Security     BearerAuth
func (h *JobSeekerHandler) Update(c *gin.Context) {
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

	req := JobSeekerUpdateRequest{
		Education:  c.PostForm("education"),
		Experience: c.PostForm("experience"),
		Skills:     formArray(c, "skills"),
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	resume, err := readAttachment(c, "resume", h.maxResume)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := h.jobSeekerUC.Update(c.Request.Context(), principal, id, domain.JobSeekerUpdate{
		Education:  req.Education,
		Experience: req.Experience,
		Skills:     req.Skills,
		Resume:     resume,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Job seeker updated successfully", profile)
}

// logout is shared by both roles. It never fails: an unusable token is
// already logged out, and the cookie is cleared either way.
func logout(c *gin.Context, authUC domain.AuthUsecase, cookies CookieOptions) {
	if err := authUC.Logout(c.Request.Context(), middleware.ExtractToken(c)); err != nil {
		logger.Log.Error("Token revocation failed", "error", err)
	}
	clearAccessTokenCookie(c, cookies)
	response.Success(c, http.StatusOK, "User logged out successfully", nil)
}
