package scheduler

import (
	"github.com/hibiken/asynq"
	"github.com/xpanvictor/vidquiz/pkg/Logger"
)

// AsynqLogger routes asynq's internal logging through our zap logger.
type AsynqLogger struct {
	logger *Logger.Logger
}

func NewAsynqLogger(logger *Logger.Logger) asynq.Logger {
	return &AsynqLogger{logger: logger.Named("asynq")}
}

func (l *AsynqLogger) Debug(args ...interface{}) { l.logger.Debug(args...) }
func (l *AsynqLogger) Info(args ...interface{})  { l.logger.Info(args...) }
func (l *AsynqLogger) Warn(args ...interface{})  { l.logger.Warn(args...) }
func (l *AsynqLogger) Error(args ...interface{}) { l.logger.Error(args...) }

// Fatal logs at error level and does not exit the process.
func (l *AsynqLogger) Fatal(args ...interface{}) { l.logger.Error(args...) }
