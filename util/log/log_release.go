//go:build release

package log

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hexaghost/wallora/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logDir returns where the rotating log file lives for the current user.
func logDir() (string, error) {
	if runtime.GOOS == "windows" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("user cache directory: %w", err)
		}
		return filepath.Join(cacheDir, config.LogWinSubDir), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("user home directory: %w", err)
	}
	return filepath.Join(homeDir, config.LogSubDir), nil
}

func init() {
	dir, err := logDir()
	if err != nil {
		log.Fatalf("Failed to resolve log directory: %v", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	log.SetOutput(&lumberjack.Logger{
		Filename:   filepath.Join(dir, strings.ToLower(config.AppName)+config.LogExt),
		MaxSize:    5, // MB
		MaxBackups: 3,
		MaxAge:     14, // days
		Compress:   true,
	})
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
}

// Print calls the standard log.Print()
func Print(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
}

// Printf calls the standard log.Printf()
func Printf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
}

// Println calls the standard log.Println()
func Println(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
}

// Fatal calls the standard log.Fatal()
func Fatal(v ...interface{}) {
	log.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf calls the standard log.Fatalf()
func Fatalf(format string, v ...interface{}) {
	log.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln calls the standard log.Fatalln()
func Fatalln(v ...interface{}) {
	log.Output(2, fmt.Sprintln(v...))
	os.Exit(1)
}

// Debug is a no-op in release builds
func Debug(v ...interface{}) {}

// Debugf is a no-op in release builds
func Debugf(format string, v ...interface{}) {}
