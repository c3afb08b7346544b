// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// LINKCTL_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv("LINKCTL_LOG"))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(&CustomHandler{})

	// An unknown level would panic in SetLevelFromString.
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.ErrorLevel
	}
	log.SetLevel(lvl)
}

// CustomHandler formats log messages and writes them to W, or stderr when W
// is nil. Stdout is left alone because it carries rendered markup.
type CustomHandler struct {
	W io.Writer
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	w := h.W
	if w == nil {
		w = os.Stderr
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var fields []string
	for _, name := range e.Fields.Names() {
		fields = append(fields, fmt.Sprintf("%s=%v", name, e.Fields.Get(name)))
	}

	message := e.Message
	if len(fields) > 0 {
		message += " " + strings.Join(fields, " ")
	}

	_, err := fmt.Fprintf(w, "%s %.1s %s\n", timestamp, level, message)
	return err
}
