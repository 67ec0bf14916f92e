package usecase

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/logger"
	"job-board-backend/pkg/security"
)

// AttachmentManager keeps stored resumes consistent with the profile rows that
// point at them.
type AttachmentManager struct {
	store     domain.AttachmentStore
	validator *security.FileValidator
	timeout   time.Duration
	secLog    *security.SecurityLogger
}

func NewAttachmentManager(
	store domain.AttachmentStore,
	validator *security.FileValidator,
	timeout time.Duration,
	secLog *security.SecurityLogger,
) *AttachmentManager {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if secLog == nil {
		secLog = security.DefaultLogger()
	}
	return &AttachmentManager{
		store:     store,
		validator: validator,
		timeout:   timeout,
		secLog:    secLog,
	}
}

// AttachNew validates file and uploads it under ObjectKey(namespace, name).
func (m *AttachmentManager) AttachNew(ctx context.Context, namespace string, file *domain.Attachment) (string, error) {
	if file == nil || len(file.Data) == 0 {
		return "", apperror.BadRequest("Resume file is required")
	}

	result := m.validator.Validate(file.Filename, file.Data)
	if !result.Valid {
		m.secLog.LogUploadRejected(ctx, file.Filename, result.Error)
		return "", apperror.BadRequest("Invalid resume file: " + result.Error)
	}

	key := ObjectKey(namespace, file.Filename)

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.store.Put(ctx, key, file.Data, result.ContentType); err != nil {
		logger.Log.Error("Resume upload failed", "key", key, "error", err)
		return "", apperror.Storage("Failed to upload resume", err)
	}
	return key, nil
}

// Replace uploads the new file first and only then retires existingKey, so
// the record never points at a deleted object. Deleting the old object is
// best-effort.
func (m *AttachmentManager) Replace(ctx context.Context, existingKey, namespace string, file *domain.Attachment) (string, error) {
	return m.ReplaceAndCommit(ctx, existingKey, namespace, file, nil)
}

// ReplaceAndCommit is Replace with the pointer update in between: commit runs
// after the upload and before the old object is deleted. If commit fails the
// new object is discarded and existingKey stays in place.
func (m *AttachmentManager) ReplaceAndCommit(ctx context.Context, existingKey, namespace string, file *domain.Attachment, commit domain.CommitFunc) (string, error) {
	newKey, err := m.AttachNew(ctx, namespace, file)
	if err != nil {
		return "", err
	}

	if commit != nil {
		if err := commit(ctx, newKey); err != nil {
			if newKey != existingKey {
				m.Discard(ctx, newKey)
			}
			return "", err
		}
	}

	// Same name means the upload overwrote the old object in place.
	if existingKey != "" && existingKey != newKey {
		m.Discard(ctx, existingKey)
	}
	return newKey, nil
}

func (m *AttachmentManager) LinkFor(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", apperror.Storage("No resume on file", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	url, err := m.store.SignedURL(ctx, key, security.ContentTypeFor(key))
	if err != nil {
		logger.Log.Error("Resume link generation failed", "key", key, "error", err)
		return "", apperror.Storage("Failed to generate resume link", err)
	}
	return url, nil
}

func (m *AttachmentManager) Discard(ctx context.Context, key string) {
	if key == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.timeout)
	defer cancel()

	if err := m.store.Delete(ctx, key); err != nil {
		logger.Log.Warn("Resume delete failed, object may be orphaned", "key", key, "error", err)
	}
}

// ObjectKey derives the storage key for a file: the path-escaped owner
// namespace, a slash, then the base filename with anything outside
// [A-Za-z0-9._-] replaced by '_'. Distinct namespaces never share a prefix.
func ObjectKey(namespace, filename string) string {
	ns := url.PathEscape(strings.ToLower(strings.TrimSpace(namespace)))
	return ns + "/" + sanitizeFilename(path.Base(strings.ReplaceAll(filename, "\\", "/")))
}

func sanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}
