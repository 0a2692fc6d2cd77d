package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type options struct {
	outputPaths []string
	name        string
}

type Option func(*options)

// WithOutput redirects log output, e.g. to stderr for commands that write
// their results to stdout.
func WithOutput(paths ...string) Option {
	return func(o *options) {
		o.outputPaths = paths
	}
}

// WithName names the root logger (api, worker, cli).
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func New(level string, opts ...Option) (*zap.Logger, error) {
	o := options{outputPaths: []string{"stdout"}}
	for _, opt := range opts {
		opt(&o)
	}

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      o.outputPaths,
		ErrorOutputPaths: []string{"stderr"},
	}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level == "debug" {
		config.Development = true
		config.Encoding = "console"
		config.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	log, err := config.Build()
	if err != nil {
		return nil, err
	}
	if o.name != "" {
		log = log.Named(o.name)
	}
	return log, nil
}
