package domain

import "context"

// Attachment is an uploaded file held in memory between the request and the
// attachment store.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type AttachmentStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key, contentType string) (string, error)
}

// CommitFunc persists a freshly uploaded key on the owning record.
type CommitFunc func(ctx context.Context, newKey string) error

type AttachmentManager interface {
	AttachNew(ctx context.Context, namespace string, file *Attachment) (string, error)
	Replace(ctx context.Context, existingKey, namespace string, file *Attachment) (string, error)
	ReplaceAndCommit(ctx context.Context, existingKey, namespace string, file *Attachment, commit CommitFunc) (string, error)
	LinkFor(ctx context.Context, key string) (string, error)
	// Discard removes key best-effort. Failures are logged, never returned.
	Discard(ctx context.Context, key string)
}
