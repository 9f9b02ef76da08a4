package testutil

import (
	"os"

	"github.com/SaiNageswarS/go-mvc-boot/logger"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// WithEnv temporarily sets an environment variable for the duration of fn.
func WithEnv(key, value string, fn func()) {
	originalEnv, had := os.LookupEnv(key)
	os.Setenv(key, value)
	defer func() {
		if had {
			os.Setenv(key, originalEnv)
		} else {
			os.Unsetenv(key)
		}
	}()

	fn()
}

// WithMockLogger replaces logger.Fatal with a recorder that panics to simulate
// program termination, runs fn and recovers. The returned mock tells whether
// Fatal was hit.
func WithMockLogger(fn func()) (mockLogger *MockLogger) {
	mockLogger = &MockLogger{}
	originalFatal := logger.Fatal
	logger.Fatal = mockLogger.Fatal
	defer func() {
		logger.Fatal = originalFatal
		// Recover from the panic caused by mock Fatal
		if r := recover(); r != nil && r != fatalPanic {
			panic(r)
		}
	}()

	fn()
	return mockLogger
}

type fatalSignal struct{}

var fatalPanic = fatalSignal{}

// MockLogger is a test double for the logger that captures Fatal calls.
type MockLogger struct {
	IsFatalCalled bool
	FatalMsg      string
}

// Fatal implements the logger.Fatal signature for testing purposes.
func (m *MockLogger) Fatal(msg string, fields ...zap.Field) {
	m.IsFatalCalled = true
	m.FatalMsg = msg
	panic(fatalPanic)
}

// RecordingRenderer remembers every call it receives, in order.
type RecordingRenderer struct {
	Calls []string
	CORS  *cors.Cors
	Data  any
	Err   error
}

func (r *RecordingRenderer) SetCORS(policy *cors.Cors) {
	r.Calls = append(r.Calls, "SetCORS")
	r.CORS = policy
}

func (r *RecordingRenderer) SetData(data any) {
	r.Calls = append(r.Calls, "SetData")
	r.Data = data
}

func (r *RecordingRenderer) Run() error {
	r.Calls = append(r.Calls, "Run")
	return r.Err
}
