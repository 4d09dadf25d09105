/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log is fedigo's ambient logging package. It wraps zap with
// per-module level control and a small set of structured field
// constructors (in fields.go) so that call sites can log either with
// printf-style convenience methods or with structured fields, matching
// the mix of styles used across the rest of the tree.
package log

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a log level.
type Level int

// Log levels.
const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
	PANIC
	FATAL
)

// String returns the string representation of the level.
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARN"
	case ERROR:
		return "ERROR"
	case PANIC:
		return "PANIC"
	case FATAL:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", l)
	}
}

// ParseLevel parses a level from its string representation.
func ParseLevel(level string) (Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	case "PANIC":
		return PANIC, nil
	case "FATAL":
		return FATAL, nil
	default:
		return ERROR, fmt.Errorf("log: invalid log level: %s", level)
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	case PANIC:
		return zapcore.PanicLevel
	case FATAL:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

const defaultModule = ""

var (
	levelsMutex  sync.RWMutex
	moduleLevels = map[string]Level{defaultModule: INFO}
)

// SetLevel sets the log level for the given module. Use SetDefaultLevel (or the empty
// module name) to set the default level.
func SetLevel(module string, level Level) {
	levelsMutex.Lock()
	defer levelsMutex.Unlock()

	moduleLevels[module] = level
}

// SetDefaultLevel sets the default level applied to modules with no explicit level set.
func SetDefaultLevel(level Level) {
	SetLevel(defaultModule, level)
}

// GetLevel returns the level configured for the given module, falling back to the default.
func GetLevel(module string) Level {
	levelsMutex.RLock()
	defer levelsMutex.RUnlock()

	if level, ok := moduleLevels[module]; ok {
		return level
	}

	return moduleLevels[defaultModule]
}

// SetSpec parses and applies a module-level spec of the form
// "module1=level1:module2=level2:defaultLevel".
func SetSpec(spec string) error {
	levels := map[string]Level{}

	for _, entry := range strings.Split(spec, ":") {
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, "=", 2)

		if len(parts) == 1 {
			level, err := ParseLevel(parts[0])
			if err != nil {
				return err
			}

			levels[defaultModule] = level

			continue
		}

		level, err := ParseLevel(parts[1])
		if err != nil {
			return fmt.Errorf("invalid log spec for module %s: %w", parts[0], err)
		}

		levels[parts[0]] = level
	}

	levelsMutex.Lock()
	defer levelsMutex.Unlock()

	if _, ok := levels[defaultModule]; !ok {
		levels[defaultModule] = moduleLevels[defaultModule]
	}

	moduleLevels = levels

	return nil
}

// GetSpec returns the current module-level spec.
func GetSpec() string {
	levelsMutex.RLock()
	defer levelsMutex.RUnlock()

	var b strings.Builder

	for module, level := range moduleLevels {
		if module == defaultModule {
			continue
		}

		b.WriteString(module)
		b.WriteString("=")
		b.WriteString(level.String())
		b.WriteString(":")
	}

	b.WriteString(moduleLevels[defaultModule].String())

	return b.String()
}

type options struct {
	out    zapcore.WriteSyncer
	fields []zap.Field
}

// Option configures a Log.
type Option func(opts *options)

// WithStdOut directs output to stdout.
func WithStdOut() Option {
	return func(opts *options) {
		opts.out = zapcore.Lock(os.Stdout)
	}
}

// WithStdErr directs output to stderr.
func WithStdErr() Option {
	return func(opts *options) {
		opts.out = zapcore.Lock(os.Stderr)
	}
}

// WithFields sets fields that are attached to every log entry emitted by the logger.
func WithFields(fields ...zap.Field) Option {
	return func(opts *options) {
		opts.fields = append(opts.fields, fields...)
	}
}

// Log is a per-module logger backed by zap, with a level that can be changed at runtime
// via SetLevel/SetSpec.
type Log struct {
	module string
	logger *zap.Logger
}

// Logger is the printf-style subset of Log's API.
type Logger interface {
	Fatalf(msg string, args ...interface{})
	Panicf(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	IsEnabled(level Level) bool
}

// New returns a new module logger.
func New(module string, opts ...Option) *Log {
	o := &options{out: zapcore.Lock(os.Stderr)}

	for _, opt := range opts {
		opt(o)
	}

	enabler := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= GetLevel(module).zapLevel()
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), o.out, enabler)

	logger := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).
		With(zap.String("module", module)).
		With(o.fields...)

	return &Log{module: module, logger: logger}
}

// NewStructured is equivalent to New; the name matches call sites that prefer it
// when every entry is expected to carry structured fields rather than printf args.
func NewStructured(module string, opts ...Option) *Log {
	return New(module, opts...)
}

// WithOptions returns a derived Log with the given zap options applied (e.g. an
// additional caller-skip for a thin wrapper function).
func (l *Log) WithOptions(opts ...zap.Option) *Log {
	return &Log{module: l.module, logger: l.logger.WithOptions(opts...)}
}

// Debug logs a structured debug entry.
func (l *Log) Debug(msg string, fields ...zap.Field) { l.logger.Debug(msg, fields...) }

// Info logs a structured info entry.
func (l *Log) Info(msg string, fields ...zap.Field) { l.logger.Info(msg, fields...) }

// Warn logs a structured warning entry.
func (l *Log) Warn(msg string, fields ...zap.Field) { l.logger.Warn(msg, fields...) }

// Error logs a structured error entry.
func (l *Log) Error(msg string, fields ...zap.Field) { l.logger.Error(msg, fields...) }

// Panic logs a structured panic entry and panics.
func (l *Log) Panic(msg string, fields ...zap.Field) { l.logger.Panic(msg, fields...) }

// Fatal logs a structured fatal entry and exits.
func (l *Log) Fatal(msg string, fields ...zap.Field) { l.logger.Fatal(msg, fields...) }

// Debugf logs a printf-style debug entry.
func (l *Log) Debugf(msg string, args ...interface{}) { l.logger.Sugar().Debugf(msg, args...) }

// Infof logs a printf-style info entry.
func (l *Log) Infof(msg string, args ...interface{}) { l.logger.Sugar().Infof(msg, args...) }

// Warnf logs a printf-style warning entry.
func (l *Log) Warnf(msg string, args ...interface{}) { l.logger.Sugar().Warnf(msg, args...) }

// Errorf logs a printf-style error entry.
func (l *Log) Errorf(msg string, args ...interface{}) { l.logger.Sugar().Errorf(msg, args...) }

// Panicf logs a printf-style panic entry and panics.
func (l *Log) Panicf(msg string, args ...interface{}) { l.logger.Sugar().Panicf(msg, args...) }

// Fatalf logs a printf-style fatal entry and exits.
func (l *Log) Fatalf(msg string, args ...interface{}) { l.logger.Sugar().Fatalf(msg, args...) }

// IsEnabled returns whether the given level is enabled for this logger's module.
func (l *Log) IsEnabled(level Level) bool {
	return level.zapLevel() >= GetLevel(l.module).zapLevel()
}

// objectMarshaller wraps an arbitrary value so it can be logged lazily (only
// marshalled if the entry is actually written) via zap.Inline/zap.Object.
type objectMarshaller struct {
	key   string
	value interface{}
}

func (m objectMarshaller) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	return enc.AddReflected(m.key, m.value)
}

// NewObjectMarshaller wraps an arbitrary value so it can be logged lazily (only
// marshalled if the entry is actually written) via zap.Inline/zap.Object.
func NewObjectMarshaller(key string, value interface{}) zapcore.ObjectMarshaler {
	return objectMarshaller{key: key, value: value}
}
