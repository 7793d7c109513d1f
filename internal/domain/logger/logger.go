// Package logger holds the program logger.
package logger

import "vidgrab/internal/utils/logging"

// Pl holds the global *ProgramLogger variable.
var Pl = new(logging.ProgramLogger)
