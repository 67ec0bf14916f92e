package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventBlockCreated       EventType = "block_created"
	EventRegistered         EventType = "account_registered"
	EventLogout             EventType = "logout"
	EventTokenRejected      EventType = "token_rejected"
	EventForbiddenAccess    EventType = "forbidden_access"
	EventUploadRejected     EventType = "upload_rejected"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Event        EventType
	SubjectType  string // "email", "ip", "account_id"
	SubjectValue string // Masked or hashed for PII
	IP           string
	UserAgent    string
	RequestID    string
	Details      map[string]interface{}
}

// SecurityLogger writes audit events through a dedicated zap logger so they
// can be shipped separately from the application log.
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger     *SecurityLogger
	defaultLoggerOnce sync.Once
)

// NewSecurityLogger builds a production zap logger writing JSON to stdout.
func NewSecurityLogger(serviceName, environment string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
}

// NewNopSecurityLogger discards every event.
func NewNopSecurityLogger() *SecurityLogger {
	return &SecurityLogger{zapLogger: zap.NewNop(), serviceName: "test", environment: "test"}
}

// DefaultLogger returns the process-wide security logger.
func DefaultLogger() *SecurityLogger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = NewSecurityLogger("job-board-backend", getEnvironment())
	})
	return defaultLogger
}

// Log logs a security event
func (sl *SecurityLogger) Log(_ context.Context, event SecurityEvent) {
	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.Time("occurred_at", time.Now().UTC()),
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(levelFor(event.Event), string(event.Event), fields...)
}

func levelFor(event EventType) zapcore.Level {
	switch event {
	case EventLoginSuccess, EventRegistered, EventLogout:
		return zapcore.InfoLevel
	case EventLoginBlocked, EventBlockCreated:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

func (sl *SecurityLogger) LogLoginSuccess(ctx context.Context, accountID int64, email string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginSuccess,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"account_id": accountID},
	})
}

// LogLoginFailed logs a failed login attempt
func (sl *SecurityLogger) LogLoginFailed(ctx context.Context, email, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginFailed,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"reason": reason},
	})
}

// LogLoginBlocked logs when a login is blocked due to too many attempts
func (sl *SecurityLogger) LogLoginBlocked(ctx context.Context, email string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLoginBlocked,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"reason": "too_many_failed_attempts"},
	})
}

func (sl *SecurityLogger) LogBlockCreated(ctx context.Context, email string, duration time.Duration) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventBlockCreated,
		SubjectType:  "email",
		SubjectValue: MaskEmail(email),
		Details:      map[string]interface{}{"duration_minutes": int(duration.Minutes())},
	})
}

func (sl *SecurityLogger) LogRegistered(ctx context.Context, accountID int64, role string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRegistered,
		SubjectType:  "account_id",
		SubjectValue: HashValue(formatID(accountID)),
		Details:      map[string]interface{}{"role": role},
	})
}

func (sl *SecurityLogger) LogLogout(ctx context.Context, accountID int64) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventLogout,
		SubjectType:  "account_id",
		SubjectValue: HashValue(formatID(accountID)),
	})
}

// LogTokenRejected never records the token itself.
func (sl *SecurityLogger) LogTokenRejected(ctx context.Context, ip, requestID, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:     EventTokenRejected,
		IP:        ip,
		RequestID: requestID,
		Details:   map[string]interface{}{"reason": reason},
	})
}

func (sl *SecurityLogger) LogForbidden(ctx context.Context, accountID int64, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventForbiddenAccess,
		SubjectType:  "account_id",
		SubjectValue: HashValue(formatID(accountID)),
		Details:      map[string]interface{}{"reason": reason},
	})
}

func (sl *SecurityLogger) LogUploadRejected(ctx context.Context, filename, reason string) {
	sl.Log(ctx, SecurityEvent{
		Event:   EventUploadRejected,
		Details: map[string]interface{}{"filename": filename, "reason": reason},
	})
}

// LogRateLimitTriggered logs when rate limiting is triggered
func (sl *SecurityLogger) LogRateLimitTriggered(ctx context.Context, ip, userAgent, requestID, endpoint string) {
	sl.Log(ctx, SecurityEvent{
		Event:        EventRateLimitTriggered,
		SubjectType:  "ip",
		SubjectValue: ip,
		IP:           ip,
		UserAgent:    userAgent,
		RequestID:    requestID,
		Details:      map[string]interface{}{"endpoint": endpoint},
	})
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if len(email) < 3 || at < 0 {
		return "***"
	}
	if at <= 1 {
		return "***" + email[at:]
	}
	return email[:1] + "***" + email[at:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// getEnvironment determines the current environment
func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
