package v1

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"job-board-backend/internal/delivery/http/middleware"
	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// CookieOptions controls the access token cookie.
type CookieOptions struct {
	Secure bool
}

func setAccessTokenCookie(c *gin.Context, session *domain.Session, opts CookieOptions) {
	maxAge := int(time.Until(session.ExpiresAt).Seconds())
	if maxAge < 0 {
		maxAge = 0
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, session.Token, maxAge, "/", "", opts.Secure, true)
}

func clearAccessTokenCookie(c *gin.Context, opts CookieOptions) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", opts.Secure, true)
}

// bindError turns a binding failure into a 400 with per-field messages.
func bindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return apperror.Validation("Validation failed", validation.FormatValidationErrors(verrs))
	}
	return apperror.BadRequest("Invalid request body")
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

func principalFrom(c *gin.Context) (*domain.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return nil, apperror.Unauthorized("Authentication required")
	}
	return p, nil
}

// formArray accepts repeated fields ("skills=a&skills=b"), the bracketed form
// ("skills[]=a") and a single comma separated value ("skills=a,b").
func formArray(c *gin.Context, field string) []string {
	values := c.PostFormArray(field)
	values = append(values, c.PostFormArray(field+"[]")...)

	if len(values) == 1 && strings.Contains(values[0], ",") {
		values = strings.Split(values[0], ",")
	}

	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// readAttachment reads the multipart file field into memory. A missing field
// returns nil, nil; size limits are enforced by the attachment validator and
// by the router's MaxMultipartMemory.
func readAttachment(c *gin.Context, field string, maxBytes int64) (*domain.Attachment, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, apperror.BadRequest("Invalid multipart form")
	}
	if maxBytes > 0 && header.Size > maxBytes {
		return nil, apperror.BadRequest("Resume file is too large")
	}

	f, err := header.Open()
	if err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperror.BadRequest("Unable to read uploaded file")
	}

	return &domain.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
