// Package logging provides structured logging for bookminer sessions.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation. The terminal belongs to the interactive prompts while
// a session runs, so log output always goes to a file under the data
// directory, rotated by size through lumberjack.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger(logging.Options{
//	    Path:       "/home/me/.local/share/bookminer/bookminer.log",
//	    Level:      "info",
//	    MaxSizeMB:  10,
//	    MaxBackups: 3,
//	})
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("note submitted", "note_id", id)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	sessionLog := logger.WithSession(state.ID)
//	sessionLog.WithPhase("menu").Info("action selected", "action", "Send Card")
//
// # Log Levels
//
//   - DEBUG: request/response details, key handling
//   - INFO: session milestones, submissions
//   - WARN: recoverable problems such as an invalid cached configuration
//   - ERROR: aborted actions and fatal failures
package logging
