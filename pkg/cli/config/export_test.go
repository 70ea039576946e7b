package config

import "time"

// NewAppForTest builds an App without parsing flags
func NewAppForTest(path string) *App {
	return &App{path: path}
}

// NewLoggerForTest builds a Logger without parsing flags
func NewLoggerForTest(level, format, output string) *Logger {
	return &Logger{level: level, format: format, output: output}
}

// NewRepositoryForTest builds a Repository config without parsing flags
func NewRepositoryForTest(backend, projectID string) *Repository {
	return &Repository{backend: backend, projectID: projectID}
}

// NewSlackForTest builds a Slack config without parsing flags
func NewSlackForTest(botToken, channelID string) *Slack {
	return &Slack{BotToken: botToken, channelID: channelID}
}

// NewArchiveForTest builds an Archive config without parsing flags
func NewArchiveForTest(bucket, format string, interval time.Duration) *Archive {
	return &Archive{bucket: bucket, prefix: "snapshots", format: format, interval: interval}
}
