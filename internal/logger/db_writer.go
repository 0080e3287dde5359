package logger

import (
	"context"
	"fmt"
	"time"

	"go-fleet/internal/config"
	"go-fleet/internal/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap/zapcore"
)

// LogEntry holds the data passed from Zap to the worker
type LogEntry struct {
	Level    zapcore.Level
	Message  string
	UserID   string
	ReportID string
	Caller   string
}

// LogRecord is the persisted shape in the logs collection
type LogRecord struct {
	Message      string    `bson:"message"`
	UserID       string    `bson:"user_id,omitempty"`
	ReportID     string    `bson:"report_id,omitempty"`
	Caller       string    `bson:"caller,omitempty"`
	LogLevel     string    `bson:"log_level"`
	AppId        string    `bson:"app_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc"`
}

// DBLogWriter handles the async writing
type DBLogWriter struct {
	db      *mongo.Database
	logChan chan LogEntry
	appId   string
}

// NewDBLogWriter initializes the worker
func NewDBLogWriter(mongodb *database.MongodbDB, cfg *config.Config) *DBLogWriter {
	writer := &DBLogWriter{
		db:      mongodb.DB,
		logChan: make(chan LogEntry, 1000), // Buffer 1000 logs
		appId:   cfg.AppId,
	}

	go writer.processLogs()

	return writer
}

// AddLog is called by the Zap hook
func (w *DBLogWriter) AddLog(entry LogEntry) {
	select {
	case w.logChan <- entry:
	default:
		// Channel full: drop instead of blocking the API
		fmt.Println("DB Log Channel Full! Dropping log:", entry.Message)
	}
}

func (w *DBLogWriter) processLogs() {
	for entry := range w.logChan {
		record := LogRecord{
			Message:      entry.Message,
			UserID:       entry.UserID,
			ReportID:     entry.ReportID,
			Caller:       entry.Caller,
			LogLevel:     entry.Level.String(),
			AppId:        w.appId,
			CreatedOnUtc: time.Now().UTC(),
		}

		// Insert into DB (safely ignore errors to keep app running)
		w.db.Collection("logs").InsertOne(context.Background(), record)
	}
}
