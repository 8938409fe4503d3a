// Package utils предоставляет простой файловый логгер.
//
// Логгер пишет в .log файл с timestamp в имени. До InitLogger все вызовы —
// no-op, поэтому библиотечные пакеты логируют без проверок.
// Thread-safe через sync.Mutex.
package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// LogPrefix — префикс имени лог-файла.
const LogPrefix = "paintmix"

var (
	logOut   io.Writer
	logFile  *os.File
	logMutex sync.Mutex
	debugOn  bool
)

// InitLogger создаёт/открывает лог-файл в каталоге dir (пусто — текущий).
//
// Имя файла: paintmix-YYYY-MM-DD-HH-MM.log. Повторный вызов — no-op.
func InitLogger(dir string, debug bool) error {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut != nil {
		return nil
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create log dir: %w", err)
		}
	}

	timestamp := time.Now().Format("2006-01-02-15-04")
	filename := filepath.Join(dir, fmt.Sprintf("%s-%s.log", LogPrefix, timestamp))

	f, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	logFile = f
	logOut = f
	debugOn = debug

	// Пишем напрямую: мьютекс уже захвачен
	write(fmt.Sprintf("[%s] INFO: Logger initialized file=%s\n", time.Now().Format("2006-01-02 15:04:05"), filename))
	return nil
}

// SetOutput направляет лог в w (тесты, stderr). nil выключает логгер.
func SetOutput(w io.Writer, debug bool) {
	logMutex.Lock()
	defer logMutex.Unlock()

	logOut = w
	debugOn = debug
}

// Info - информационное сообщение.
func Info(msg string, keyvals ...any) {
	log("INFO", msg, keyvals...)
}

// Error - сообщение об ошибке.
func Error(msg string, keyvals ...any) {
	log("ERROR", msg, keyvals...)
}

// Debug - отладочное сообщение, пишется только в debug-режиме.
func Debug(msg string, keyvals ...any) {
	log("DEBUG", msg, keyvals...)
}

// Warn - предупреждение.
func Warn(msg string, keyvals ...any) {
	log("WARN", msg, keyvals...)
}

// log - внутренняя функция записи.
//
// Формат: [YYYY-MM-DD HH:MM:SS] LEVEL: message key1=value1 key2=value2
func log(level, msg string, keyvals ...any) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logOut == nil || (level == "DEBUG" && !debugOn) {
		return
	}

	line := fmt.Sprintf("[%s] %s: %s", time.Now().Format("2006-01-02 15:04:05"), level, msg)
	for i := 0; i+1 < len(keyvals); i += 2 {
		line += fmt.Sprintf(" %v=%v", keyvals[i], keyvals[i+1])
	}

	write(line + "\n")
}

// write пишет строку; при ошибке — fallback на stderr. Вызывать под мьютексом.
func write(line string) {
	if _, err := io.WriteString(logOut, line); err != nil {
		fmt.Fprint(os.Stderr, line)
		fmt.Fprintf(os.Stderr, "[LOGGER ERROR: write failed: %v]\n", err)
		return
	}

	if logFile != nil && logOut == io.Writer(logFile) {
		if err := logFile.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Sync failed: %v]\n", err)
		}
	}
}

// Close закрывает лог-файл. Вызывается через defer в main().
func Close() {
	logMutex.Lock()
	defer logMutex.Unlock()

	if logFile != nil {
		if err := logFile.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "[LOGGER WARNING: Close failed: %v]\n", err)
		}
		logFile = nil
	}
	logOut = nil
}
