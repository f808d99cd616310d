package core

// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. The CLI logs the code next to the technical error so a failed
// run can be diagnosed from its last log line.
//
// Error codes are grouped by category:
//
//	RUN001-RUN099   Run control (cancelled, timed out)
//	FILE001-FILE099 Files and archives (missing, corrupt, empty)
//	SRC001-SRC099   Source definitions (unknown source, bad header)
//	VAL001-VAL099   Value conversion during load
//	DB001-DB099     Database (constraints, connectivity, schema)
//	SCR001-SCR099   Poster scraping
//	ERR000          Fallback when no pattern matches
//
// # Pattern Matching
//
// Error patterns are matched case-insensitively using strings.Contains.
// The first matching pattern wins, so more specific patterns should be
// defined before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Run control
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Run was cancelled",
			Action:  "Start the command again when ready",
			Code:    "RUN001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Run timed out",
			Action:  "Increase the timeout or retry",
			Code:    "RUN002",
		},
	},

	// Files
	{
		pattern: "no such file",
		msg: UserMessage{
			Message: "Source file not found",
			Action:  "Check --data, or run unzip first",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid gzip",
		msg: UserMessage{
			Message: "Archive is not a valid gzip file",
			Action:  "Download the dataset file again",
			Code:    "FILE002",
		},
	},
	{
		pattern: "invalid tsv",
		msg: UserMessage{
			Message: "File is not valid tab-separated data",
			Action:  "Download the dataset file again",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "File has no header line",
			Action:  "Download the dataset file again",
			Code:    "FILE004",
		},
	},
	{
		pattern: "permission denied",
		msg: UserMessage{
			Message: "File or directory is not accessible",
			Action:  "Check permissions on the data and output directories",
			Code:    "FILE005",
		},
	},

	// Sources
	{
		pattern: "unknown source",
		msg: UserMessage{
			Message: "Unknown source",
			Action:  "Run the tables command to list valid sources",
			Code:    "SRC001",
		},
	},
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from the source header",
			Action:  "Check that the file is an unmodified IMDb dataset file",
			Code:    "SRC002",
		},
	},
	{
		pattern: "unknown table",
		msg: UserMessage{
			Message: "Unknown output table",
			Action:  "Run the tables command to list valid tables",
			Code:    "SRC003",
		},
	},

	// Values
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number in output file",
			Action:  "Re-run convert; the file may have been edited",
			Code:    "VAL001",
		},
	},
	{
		pattern: "invalid boolean",
		msg: UserMessage{
			Message: "Invalid boolean in output file",
			Action:  "Re-run convert; the file may have been edited",
			Code:    "VAL002",
		},
	},
	{
		pattern: "required field",
		msg: UserMessage{
			Message: "Required field is NULL",
			Action:  "Check the source row for missing identifiers",
			Code:    "VAL003",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "Expected column not found",
			Action:  "Re-run convert to regenerate the output files",
			Code:    "VAL004",
		},
	},

	// Database
	{
		pattern: "duplicate key",
		msg: UserMessage{
			Message: "A row with this key already exists",
			Action:  "Load with --truncate to replace existing rows",
			Code:    "DB001",
		},
	},
	{
		pattern: "violates unique",
		msg: UserMessage{
			Message: "A duplicate value was found",
			Action:  "Load with --truncate to replace existing rows",
			Code:    "DB001",
		},
	},
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Check DATABASE_URL and that the server is running",
			Code:    "DB002",
		},
	},
	{
		pattern: "password authentication failed",
		msg: UserMessage{
			Message: "Database rejected the credentials",
			Action:  "Check the user and password in DATABASE_URL",
			Code:    "DB003",
		},
	},
	{
		pattern: "does not exist",
		msg: UserMessage{
			Message: "Database table does not exist",
			Action:  "Load with --migrate to create the schema",
			Code:    "DB004",
		},
	},
	{
		pattern: "database url",
		msg: UserMessage{
			Message: "Database URL is missing or invalid",
			Action:  "Set DATABASE_URL or pass --database-url",
			Code:    "DB005",
		},
	},
	{
		pattern: "timeout",
		msg: UserMessage{
			Message: "Operation timed out",
			Action:  "Try again later",
			Code:    "DB006",
		},
	},
	{
		pattern: "deadlock",
		msg: UserMessage{
			Message: "Database was busy with conflicting operations",
			Action:  "Please try again",
			Code:    "DB007",
		},
	},

	// Scraper
	{
		pattern: "invalid title id",
		msg: UserMessage{
			Message: "Title ID is not valid",
			Action:  "Use an identifier like tt0111161",
			Code:    "SCR001",
		},
	},
	{
		pattern: "poster not found",
		msg: UserMessage{
			Message: "The title page has no poster",
			Action:  "The title may not have artwork",
			Code:    "SCR002",
		},
	},
	{
		pattern: "unexpected status",
		msg: UserMessage{
			Message: "The title page could not be fetched",
			Action:  "Check the title ID or try again later",
			Code:    "SCR003",
		},
	},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Re-run with --log-level debug for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// It searches through known error patterns (case-insensitive) and returns
// the first match. If no pattern matches, a generic fallback message with
// code ERR000 is returned.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())

	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}
