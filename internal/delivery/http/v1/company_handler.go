package v1

import (
	"net/http"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	authUC    domain.AuthUsecase
	companyUC domain.CompanyUsecase
	cookies   CookieOptions
}

func NewCompanyHandler(public, protected *gin.RouterGroup, authUC domain.AuthUsecase, companyUC domain.CompanyUsecase, cookies CookieOptions, limits RouteLimits) {
	handler := &CompanyHandler{
		authUC:    authUC,
		companyUC: companyUC,
		cookies:   cookies,
	}

	publicCompany := public.Group("/company")
	{
		publicCompany.POST("/login", limits.Login, handler.Login)
		publicCompany.POST("/register", limits.Login, handler.Register)
		publicCompany.POST("/logout", handler.Logout)
	}

	company := protected.Group("/company")
	company.Use(middleware.RequireRole(authUC, domain.RoleCompany))
	{
		company.GET("/current_company", handler.Current)
		company.PATCH("/update_company_details/:id", handler.Update)
	}
}

type CompanyRegisterRequest struct {
	Username    string `json:"username" binding:"required,username"`
	Email       string `json:"email" binding:"required,email,max=254"`
	Password    string `json:"password" binding:"required,strong_password"`
	CompanyName string `json:"company_name" binding:"required,min=2,max=100,valid_name"`
	Description string `json:"description" binding:"omitempty,max=2000,no_emoji"`
	Website     string `json:"website" binding:"omitempty,url,max=255"`
	Location    string `json:"location" binding:"omitempty,max=100,no_emoji"`
}

type CompanyUpdateRequest struct {
	CompanyName *string `json:"company_name" binding:"omitempty,min=2,max=100,valid_name"`
	Description *string `json:"description" binding:"omitempty,max=2000,no_emoji"`
	Website     *string `json:"website" binding:"omitempty,url,max=255"`
	Location    *string `json:"location" binding:"omitempty,max=100,no_emoji"`
}

// Login godoc
// @Summary      Company login
// @Description  Verify email and password of a company account. Sets the accessToken cookie.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.Session}
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Router       /company/login [post]
func (h *CompanyHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	session, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, domain.RoleCompany)
	if err != nil {
		_ = c.Error(err)
		return
	}

	setAccessTokenCookie(c, session, h.cookies)
	response.Success(c, http.StatusOK, "Company logged in successfully", session)
}

// Register godoc
// @Summary      Company registration
// @Description  Create a company account and its profile. Sets the accessToken cookie.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        register  body      CompanyRegisterRequest  true  "Registration details"
// @Success      201       {object}  response.Response{data=domain.Session}
// @Failure      400       {object}  response.Response
// @Router       /company/register [post]
func (h *CompanyHandler) Register(c *gin.Context) {
	var req CompanyRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	session, err := h.companyUC.Register(c.Request.Context(), domain.CompanyRegistration{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Name:        req.CompanyName,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	setAccessTokenCookie(c, session, h.cookies)
	response.Success(c, http.StatusCreated, "Company registered successfully", session)
}

// Logout godoc
// @Summary      Company logout
// @Tags         company
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /company/logout [post]
func (h *CompanyHandler) Logout(c *gin.Context) {
	logout(c, h.authUC, h.cookies)
}

// Current godoc
// @Summary      Current company
// @Tags         company
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Principal}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /company/current_company [get]
// @Security     BearerAuth
func (h *CompanyHandler) Current(c *gin.Context) {
	principal, err := principalFrom(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company fetched successfully", principal)
}

// Update godoc
// @Summary      Update company details
// @Description  Partial update; omitted fields keep their value.
// @Tags         company
// @Accept       json
// @Produce      json
// @Param        id       path      int                   true  "Company ID"
// @Param        company  body      CompanyUpdateRequest  true  "Fields to change"
// @Success      200      {object}  response.Response{data=domain.CompanyProfile}
// @Failure      400      {object}  response.Response
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /company/update_company_details/{id} [patch]
// @Security     BearerAuth
func (h *CompanyHandler) Update(c *gin.Context) {
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

	var req CompanyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(bindError(err))
		return
	}

	company, err := h.companyUC.Update(c.Request.Context(), principal, id, domain.CompanyUpdate{
		Name:        req.CompanyName,
		Description: req.Description,
		Website:     req.Website,
		Location:    req.Location,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company updated successfully", company)
}
