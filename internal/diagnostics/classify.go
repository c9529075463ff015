package diagnostics

import (
	"regexp"
	"strings"
)

var (
	// path/to/file.py:123: DeprecationWarning: message
	warningLine = regexp.MustCompile(`^(?:\S.*?:\d+: )?([A-Za-z]*Warning): (.*)$`)
	// WARNING:root:message
	logLine = regexp.MustCompile(`^(DEBUG|INFO|WARNING|ERROR|CRITICAL):([^:\s]*):(.*)$`)
)

// Classify turns one line of toolchain output into a Diagnostic. Lines that are
// neither a warning nor a prefixed log record become info-level log records with
// the whole line as message.
func Classify(line string) Diagnostic {
	line = strings.TrimRight(line, "\r\n")
	if m := warningLine.FindStringSubmatch(line); m != nil {
		return Diagnostic{
			Message:  m[2],
			Category: warningCategory(m[1]),
			Severity: SeverityWarning,
			Raw:      line,
		}
	}
	if m := logLine.FindStringSubmatch(line); m != nil {
		return Diagnostic{
			Message:  m[3],
			Category: CategoryLogRecord,
			Severity: logSeverity(m[1]),
			Raw:      line,
		}
	}
	return Diagnostic{Message: line, Category: CategoryLogRecord, Severity: SeverityInfo, Raw: line}
}

// warningCategory follows Python's class hierarchy: PendingDeprecationWarning
// and FutureWarning are not DeprecationWarning subclasses.
func warningCategory(class string) Category {
	switch class {
	case "DeprecationWarning":
		return CategoryDeprecation
	case "RuntimeWarning":
		return CategoryRuntimeWarning
	case "UserWarning", "Warning":
		return CategoryGenericWarning
	default:
		return CategoryOtherWarning
	}
}

func logSeverity(level string) Severity {
	switch level {
	case "DEBUG":
		return SeverityDebug
	case "INFO":
		return SeverityInfo
	case "WARNING":
		return SeverityWarning
	default:
		return SeverityError
	}
}

// isWarningSource matches the indented source excerpt printed after a warning header.
func isWarningSource(line string) bool {
	return strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != ""
}
