package usecase_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"job-board-backend/internal/domain"
	"job-board-backend/internal/usecase"
	"job-board-backend/pkg/apperror"
	"job-board-backend/pkg/security"
	"job-board-backend/pkg/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n<< /Root 1 0 R >>\n%%EOF\n")

func resume(name string) *domain.Attachment {
	return &domain.Attachment{Filename: name, ContentType: "application/pdf", Data: pdfBytes}
}

func newMemoryManager(t *testing.T) (*usecase.AttachmentManager, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore("", "signing-secret", time.Minute)
	srv := httptest.NewServer(store)
	t.Cleanup(srv.Close)
	store.SetBaseURL(srv.URL)

	m := usecase.NewAttachmentManager(store, security.NewFileValidator(1<<20), time.Second, security.NewNopSecurityLogger())
	return m, store
}

func TestAttachmentManager_RoundTrip(t *testing.T) {
	ctx := context.Background()
	m, store := newMemoryManager(t)

	key, err := m.AttachNew(ctx, "Ada@Example.com", resume("My CV.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com/My_CV.pdf", key)
	assert.True(t, store.Has(key))

	link, err := m.LinkFor(ctx, key)
	require.NoError(t, err)

	resp, err := http.Get(link)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, pdfBytes, body)
}

func TestAttachmentManager_RejectsInvalidFiles(t *testing.T) {
	ctx := context.Background()
	m, store := newMemoryManager(t)

	tests := []struct {
		name string
		file *domain.Attachment
	}{
		{name: "missing", file: nil},
		{name: "empty", file: &domain.Attachment{Filename: "cv.pdf"}},
		{name: "disallowed extension", file: &domain.Attachment{Filename: "cv.exe", Data: []byte("MZ\x90\x00")}},
		{name: "content does not match extension", file: &domain.Attachment{Filename: "cv.pdf", Data: []byte("PK\x03\x04 not a pdf")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.AttachNew(ctx, "ada@example.com", tt.file)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
		})
	}
	assert.Equal(t, 0, store.Len())
}

func TestAttachmentManager_ReplaceAndCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("new object before commit, old object after", func(t *testing.T) {
		m, store := newMemoryManager(t)
		oldKey, err := m.AttachNew(ctx, "ada@example.com", resume("old.pdf"))
		require.NoError(t, err)

		var seenDuringCommit bool
		newKey, err := m.ReplaceAndCommit(ctx, oldKey, "ada@example.com", resume("new.pdf"),
			func(ctx context.Context, k string) error {
				// both objects exist while the row is being repointed
				seenDuringCommit = store.Has(k) && store.Has(oldKey)
				return nil
			})
		require.NoError(t, err)

		assert.True(t, seenDuringCommit)
		assert.Equal(t, "ada@example.com/new.pdf", newKey)
		assert.True(t, store.Has(newKey))
		assert.False(t, store.Has(oldKey))
	})

	t.Run("failed commit keeps the old object", func(t *testing.T) {
		m, store := newMemoryManager(t)
		oldKey, err := m.AttachNew(ctx, "ada@example.com", resume("old.pdf"))
		require.NoError(t, err)

		_, err = m.ReplaceAndCommit(ctx, oldKey, "ada@example.com", resume("new.pdf"),
			func(context.Context, string) error { return apperror.Database(errors.New("boom")) })

		assert.Equal(t, apperror.KindDatabase, apperror.KindOf(err))
		assert.True(t, store.Has(oldKey))
		assert.False(t, store.Has("ada@example.com/new.pdf"))
	})

	t.Run("same filename overwrites in place", func(t *testing.T) {
		m, store := newMemoryManager(t)
		oldKey, err := m.AttachNew(ctx, "ada@example.com", resume("cv.pdf"))
		require.NoError(t, err)

		newKey, err := m.Replace(ctx, oldKey, "ada@example.com", resume("cv.pdf"))
		require.NoError(t, err)
		assert.Equal(t, oldKey, newKey)
		assert.True(t, store.Has(newKey))
	})

	t.Run("upload failure leaves everything untouched", func(t *testing.T) {
		store := new(MockAttachmentStore)
		store.On("Put", mock.Anything, "ada@example.com/new.pdf", pdfBytes, "application/pdf").Return(errors.New("s3 down"))
		m := usecase.NewAttachmentManager(store, security.NewFileValidator(1<<20), time.Second, security.NewNopSecurityLogger())

		committed := false
		_, err := m.ReplaceAndCommit(ctx, "ada@example.com/old.pdf", "ada@example.com", resume("new.pdf"),
			func(context.Context, string) error { committed = true; return nil })

		assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
		assert.False(t, committed)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("old object delete failure is swallowed", func(t *testing.T) {
		store := new(MockAttachmentStore)
		store.On("Put", mock.Anything, "ada@example.com/new.pdf", pdfBytes, "application/pdf").Return(nil)
		store.On("Delete", mock.Anything, "ada@example.com/old.pdf").Return(errors.New("s3 down"))
		m := usecase.NewAttachmentManager(store, security.NewFileValidator(1<<20), time.Second, security.NewNopSecurityLogger())

		key, err := m.Replace(ctx, "ada@example.com/old.pdf", "ada@example.com", resume("new.pdf"))
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com/new.pdf", key)
		store.AssertExpectations(t)
	})
}

func TestAttachmentManager_LinkForFailures(t *testing.T) {
	ctx := context.Background()
	m, _ := newMemoryManager(t)

	_, err := m.LinkFor(ctx, "")
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))

	_, err = m.LinkFor(ctx, "nobody/missing.pdf")
	assert.Equal(t, apperror.KindStorage, apperror.KindOf(err))
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		namespace, filename, want string
	}{
		{"ada@example.com", "resume.pdf", "ada@example.com/resume.pdf"},
		{" Ada+jobs@Example.com ", "resume.pdf", "ada+jobs@example.com/resume.pdf"},
		{"ada@example.com", "../../etc/passwd.txt", "ada@example.com/passwd.txt"},
		{"ada@example.com", `C:\Users\ada\cv final.docx`, "ada@example.com/cv_final.docx"},
		{"ada@example.com", "..", "ada@example.com/file"},
		{"a/b", "x.pdf", "a%2Fb/x.pdf"},
		{"a!b@x.com", "cv.pdf", "a%21b@x.com/cv.pdf"},
		{"a%21b@x.com", "cv.pdf", "a%2521b@x.com/cv.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.namespace+"/"+tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.ObjectKey(tt.namespace, tt.filename))
		})
	}
}

func TestObjectKey_DistinctOwnersNeverShareKeys(t *testing.T) {
	owners := []string{"a_b@x.com", "a!b@x.com", "a b@x.com", "a#b@x.com", "a/b@x.com", "a%21b@x.com"}
	seen := make(map[string]string, len(owners))
	for _, owner := range owners {
		key := usecase.ObjectKey(owner, "cv.pdf")
		if prev, ok := seen[key]; ok {
			t.Fatalf("%q and %q both map to %q", prev, owner, key)
		}
		seen[key] = owner
	}
}

func TestAttachmentManager_OwnersDoNotOverwriteEachOther(t *testing.T) {
	ctx := context.Background()
	m, store := newMemoryManager(t)

	first, err := m.AttachNew(ctx, "a_b@x.com", resume("cv.pdf"))
	require.NoError(t, err)

	other := &domain.Attachment{Filename: "cv.pdf", Data: []byte("%PDF-1.4\nOTHER\n%%EOF\n")}
	second, err := m.AttachNew(ctx, "a!b@x.com", other)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = m.Replace(ctx, second, "a!b@x.com", resume("cv2.pdf"))
	require.NoError(t, err)

	require.True(t, store.Has(first))
	link, err := m.LinkFor(ctx, first)
	require.NoError(t, err)

	resp, err := http.Get(link)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, pdfBytes, body)
}
