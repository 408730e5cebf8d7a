package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("INKPRESS_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("INKPRESS_DEBUG") == "true"
}

func GetListen() string {
	listen := os.Getenv("INKPRESS_LISTEN")
	if listen == "" {
		listen = "0.0.0.0"
	}
	return listen
}

func GetPort() string {
	port := os.Getenv("INKPRESS_PORT")
	if port == "" {
		port = "8080"
	}
	return port
}

// GetSessionSecret returns the key used to sign session cookies. An
// empty value tells the web server to generate a volatile one at
// startup.
func GetSessionSecret() string {
	return os.Getenv("INKPRESS_SESSION_SECRET")
}

// GetSessionMaxAge returns the session lifetime in minutes.
func GetSessionMaxAge() int {
	return 60 * 24
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("INKPRESS_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "/etc/inkpress"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("INKPRESS_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "/var/log"
	}
	return logFolderPath
}
