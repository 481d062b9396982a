package logger

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var ErrLogNotFound = errors.New("log not found")

type ILogger interface {
	Debug(module, message string, details map[string]interface{})
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
	Sync() error
	WithCorrelationID(id string) ILogger
	GetLogs(level string, limit, offset int) ([]LogEntry, error)
	GetLogById(id string) (*LogEntry, error)
	GetLogsByCorrelationID(id string) ([]LogEntry, error)
}

type ZapLogger struct {
	logger   *zap.Logger
	filePath string
	journal  *decisionJournal
}

// NewZapLogger writes JSON to a rotated file and mirrors everything to stdout.
// The file is also the source for the admin log reader.
func NewZapLogger(logFilePath string, isProd bool) *ZapLogger {
	rotator := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    10, // MB
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	}

	fileEncoder := zapcore.NewJSONEncoder(fileEncoderConfig())

	consoleEncoder := fileEncoder
	if !isProd {
		consoleEncoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	journal := newDecisionJournal(decisionTTL)
	core := zapcore.NewTee(
		zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), zap.InfoLevel),
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stdout), zap.DebugLevel),
		&decisionCore{LevelEnabler: zap.InfoLevel, journal: journal},
	)

	// two frames: the level method and write
	return &ZapLogger{
		logger:   zap.New(core, zap.AddCaller(), zap.AddCallerSkip(2)),
		filePath: logFilePath,
		journal:  journal,
	}
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}

func (l *ZapLogger) Debug(module, message string, details map[string]interface{}) {
	l.write(zapcore.DebugLevel, module, message, details)
}

func (l *ZapLogger) Info(module, message string, details map[string]interface{}) {
	l.write(zapcore.InfoLevel, module, message, details)
}

func (l *ZapLogger) Warn(module, message string, details map[string]interface{}) {
	l.write(zapcore.WarnLevel, module, message, details)
}

func (l *ZapLogger) Error(module, message string, details map[string]interface{}) {
	l.write(zapcore.ErrorLevel, module, message, details)
}

func (l *ZapLogger) write(level zapcore.Level, module, message string, details map[string]interface{}) {
	ce := l.logger.Check(level, message)
	if ce == nil {
		return
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	fields := []zap.Field{zap.String("module", module), zap.Any("details", details)}
	if err, ok := details["error"].(error); ok {
		fields = append(fields, zap.NamedError("error_ref", err))
	}
	ce.Write(fields...)
}

func (l *ZapLogger) Sync() error {
	return l.logger.Sync()
}

// WithCorrelationID tags every entry of the returned logger with the request id
func (l *ZapLogger) WithCorrelationID(id string) ILogger {
	if id == "" {
		return l
	}
	return &ZapLogger{
		logger:   l.logger.With(zap.String(CorrelationKey, id)),
		filePath: l.filePath,
		journal:  l.journal,
	}
}

// TakeDecisions returns the decision records logged under id and forgets them
func (l *ZapLogger) TakeDecisions(id string) []DecisionRecord {
	if l.journal == nil {
		return nil
	}
	return l.journal.take(id)
}

// LogEntry is one decoded line of the log file
type LogEntry struct {
	Id            string                 `json:"id"`
	Timestamp     string                 `json:"timestamp"`
	Level         string                 `json:"level"`
	Message       string                 `json:"message"`
	Module        string                 `json:"module,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
}

// GetLogs pages through the log file newest first
func (l *ZapLogger) GetLogs(level string, limit, offset int) ([]LogEntry, error) {
	entries, err := l.readEntries(func(e LogEntry) bool {
		return level == "" || e.Level == level
	})
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	if offset >= len(entries) {
		return []LogEntry{}, nil
	}
	end := min(offset+limit, len(entries))
	return entries[offset:end], nil
}

// GetLogsByCorrelationID returns one request's entries in the order they were written
func (l *ZapLogger) GetLogsByCorrelationID(id string) ([]LogEntry, error) {
	return l.readEntries(func(e LogEntry) bool {
		return e.CorrelationID == id
	})
}

func (l *ZapLogger) GetLogById(id string) (*LogEntry, error) {
	found, err := l.readEntries(func(e LogEntry) bool {
		return e.Id == id
	})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, ErrLogNotFound
	}
	return &found[len(found)-1], nil
}

// readEntries scans the active file only; rotated backups are not read.
// Entries without an id get the hash of their line.
func (l *ZapLogger) readEntries(keep func(LogEntry) bool) ([]LogEntry, error) {
	if l.filePath == "" {
		return []LogEntry{}, nil
	}
	file, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []LogEntry{}, nil
		}
		return nil, err
	}
	defer file.Close()

	entries := []LogEntry{}
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		var entry LogEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			continue
		}
		if entry.Id == "" {
			sum := md5.Sum(line)
			entry.Id = hex.EncodeToString(sum[:])
		}
		if keep(entry) {
			entries = append(entries, entry)
		}
	}
	return entries, scanner.Err()
}
