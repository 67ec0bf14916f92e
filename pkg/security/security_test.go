package security

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Abcd123!")
	require.NoError(t, err)

	assert.True(t, CheckPassword(hash, "Abcd123!"))
	assert.False(t, CheckPassword(hash, "abcd123!"))
	assert.False(t, CheckPassword("not-a-hash", "Abcd123!"))
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))
}

func TestFileValidator(t *testing.T) {
	v := NewFileValidator(1 << 20)
	pdf := append([]byte("%PDF-1.4\n"), []byte(strings.Repeat("resume ", 20))...)

	tests := []struct {
		name     string
		filename string
		data     []byte
		valid    bool
		ctype    string
	}{
		{"pdf", "cv.pdf", pdf, true, "application/pdf"},
		{"uppercase extension", "CV.PDF", pdf, true, "application/pdf"},
		{"plain text", "cv.txt", []byte("Jane Doe\nGo developer\n"), true, "text/plain"},
		{"spoofed pdf", "cv.pdf", []byte("<html><body>hi</body></html>"), false, "application/pdf"},
		{"executable", "cv.exe", []byte("MZ\x90\x00\x03\x00"), false, ""},
		{"no extension", "resume", pdf, false, ""},
		{"empty", "cv.pdf", nil, false, ""},
		{"too large", "cv.pdf", append(pdf, make([]byte, 1<<20)...), false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := v.Validate(tt.filename, tt.data)
			assert.Equal(t, tt.valid, res.Valid, res.Error)
			if tt.valid {
				assert.Equal(t, tt.ctype, res.ContentType)
			}
		})
	}
}

func TestContentTypeFor(t *testing.T) {
	assert.Equal(t, "application/pdf", ContentTypeFor("a@x.com/cv.pdf"))
	assert.Equal(t, "application/octet-stream", ContentTypeFor("a@x.com/cv.bin"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***@x.com", MaskEmail("a@x.com"))
	assert.Equal(t, "***", MaskEmail("nope"))
}

func TestLoginTracker_BlocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	lt := NewMemoryLoginTracker(LoginTrackerConfig{
		MaxAttempts:   3,
		AttemptWindow: time.Minute,
		BlockDuration: 10 * time.Minute,
	}, NewNopSecurityLogger())
	lt.now = func() time.Time { return now }

	assert.False(t, lt.RecordFailure(ctx, "a@x.com"))
	assert.False(t, lt.RecordFailure(ctx, "A@X.com"))
	assert.False(t, lt.IsBlocked(ctx, "a@x.com"))
	assert.True(t, lt.RecordFailure(ctx, "a@x.com"))
	assert.True(t, lt.IsBlocked(ctx, "a@x.com"))

	lt.Reset(ctx, "a@x.com")
	assert.True(t, lt.IsBlocked(ctx, "a@x.com"), "a successful login cannot lift an active block")

	now = now.Add(11 * time.Minute)
	assert.False(t, lt.IsBlocked(ctx, "a@x.com"))
}

func TestLoginTracker_ResetClearsCounter(t *testing.T) {
	ctx := context.Background()
	lt := NewMemoryLoginTracker(LoginTrackerConfig{MaxAttempts: 2}, NewNopSecurityLogger())

	lt.RecordFailure(ctx, "b@x.com")
	lt.Reset(ctx, "b@x.com")
	assert.False(t, lt.RecordFailure(ctx, "b@x.com"))
	assert.False(t, lt.IsBlocked(ctx, "b@x.com"))
}
