package v1

import (
	"net/http"
	"sync"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/delivery/http/response"
	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteLimits are the per-route rate limiters. Nil entries disable the limit.
type RouteLimits struct {
	Global gin.HandlerFunc
	Login  gin.HandlerFunc
	Upload gin.HandlerFunc
}

func (l RouteLimits) withDefaults() RouteLimits {
	pass := func(c *gin.Context) { c.Next() }
	if l.Global == nil {
		l.Global = pass
	}
	if l.Login == nil {
		l.Login = pass
	}
	if l.Upload == nil {
		l.Upload = pass
	}
	return l
}

type RouterDeps struct {
	AuthUC        domain.AuthUsecase
	JobSeekerUC   domain.JobSeekerUsecase
	CompanyUC     domain.CompanyUsecase
	JobListingUC  domain.JobListingUsecase
	ApplicationUC domain.JobApplicationUsecase
	HealthUC      usecase.HealthUsecase
	SecurityLog   *security.SecurityLogger
	Limits        RouteLimits
	Cookies       CookieOptions
	FrontendURL   string
	// MaxResumeBytes caps the uploaded resume before it is read into memory.
	MaxResumeBytes int64
	// Files serves signed attachment URLs when the in-memory store is in use.
	Files http.Handler
}

// FilesPath is where Files is mounted.
const FilesPath = "/api/v1/files"

var registerOnce sync.Once

// registerValidators adds the custom rules to gin's binding validator.
func registerValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			validation.RegisterValidators(v)
		}
	})
}

func NewRouter(deps RouterDeps) *gin.Engine {
	registerValidators()

	r := gin.New()
	limits := deps.Limits.withDefaults()

	if deps.MaxResumeBytes > 0 {
		r.MaxMultipartMemory = deps.MaxResumeBytes + 1<<20
	}

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.ErrorHandler())
	r.Use(limits.Global)

	v1 := r.Group("/api/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Swagger
	v1.GET("/documentation/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if deps.Files != nil {
		v1.GET("/files", gin.WrapH(deps.Files))
	}

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.Authenticate(deps.AuthUC, deps.SecurityLog))
	{
		NewJobSeekerHandler(v1, protected, deps.AuthUC, deps.JobSeekerUC, deps.Cookies, deps.MaxResumeBytes, limits)
		NewCompanyHandler(v1, protected, deps.AuthUC, deps.CompanyUC, deps.Cookies, limits)
		NewJobListingHandler(v1, protected, deps.AuthUC, deps.JobListingUC)
		NewJobApplicationHandler(v1, protected, deps.AuthUC, deps.ApplicationUC)
	}

	return r
}
