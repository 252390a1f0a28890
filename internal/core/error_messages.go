// Package core provides column selection and data-quality checks.
//
// # Error Codes Reference
//
// This file defines user-friendly error messages with codes for support
// reference. Codes are grouped by category:
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Missing columns: Requested columns are not in the table
//	         Action: Check the column names against the file header
//	         Patterns: "not in the dataframe"
//
//	COL002 - Column not found: A named column does not exist
//	         Action: Verify the column name is spelled exactly
//	         Patterns: "column not found"
//
//	COL003 - Duplicate column: The table repeats a column name
//	         Action: Rename the repeated header
//	         Patterns: "duplicate column"
//
//	COL004 - Ragged table: Columns have different lengths
//	         Action: Ensure every row has the same number of fields
//	         Patterns: "different row counts"
//
//	COL005 - No columns: The request named no columns to select
//	         Patterns: "no columns requested"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: File exceeds the configured size limit
//	FILE002 - Invalid CSV: File is not a valid CSV
//	FILE003 - Unsupported format: Only CSV, JSON and Parquet are read
//	FILE004 - Empty file: The file has no header or rows
//	FILE005 - Invalid JSON: File is not an array of objects
//	FILE006 - Invalid Parquet: File could not be read as Parquet
//	FILE007 - No file: The form had no file field
//
// # Source Errors (SRC001-SRC099)
//
//	SRC001 - Connection refused: Unable to connect to database
//	SRC002 - Query failed: The database rejected the query
//
// # Check Errors (CHK001-CHK099)
//
//	CHK001 - System busy: Too many checks in progress
//	CHK002 - Request cancelled: Request was cancelled
//	CHK003 - Request timeout: Request timed out
//	CHK004 - Rate limited: Too many requests from one client
//
// # Auth Errors (AUTH001-AUTH099)
//
//	AUTH001 - Missing API key
//	AUTH002 - Invalid API key
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: An unexpected error occurred
//
// Patterns are matched case-insensitively with strings.Contains and the
// first match wins, so specific patterns come before general ones.
package core

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

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// =========================================================================
	// Column Errors (COL001-COL005)
	// =========================================================================
	{
		pattern: "not in the dataframe",
		msg: UserMessage{
			Message: "Requested columns are not in the table",
			Action:  "Check the column names against the file header",
			Code:    "COL001",
		},
	},
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "Column not found",
			Action:  "Verify the column name is spelled exactly",
			Code:    "COL002",
		},
	},
	{
		pattern: "duplicate column",
		msg: UserMessage{
			Message: "The table repeats a column name",
			Action:  "Rename the repeated header",
			Code:    "COL003",
		},
	},
	{
		pattern: "different row counts",
		msg: UserMessage{
			Message: "Columns have different lengths",
			Action:  "Ensure every row has the same number of fields",
			Code:    "COL004",
		},
	},
	{
		pattern: "no columns requested",
		msg: UserMessage{
			Message: "No columns were requested",
			Action:  "Name at least one column to select",
			Code:    "COL005",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE007)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the configured size limit",
			Action:  "Select fewer rows or split the file",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "File format is not supported",
			Action:  "Provide a CSV, JSON or Parquet file",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Provide a file with a header row",
			Code:    "FILE004",
		},
	},
	{
		pattern: "invalid json",
		msg: UserMessage{
			Message: "File is not valid JSON records",
			Action:  "Provide an array of objects",
			Code:    "FILE005",
		},
	},
	{
		pattern: "invalid parquet",
		msg: UserMessage{
			Message: "File could not be read as Parquet",
			Action:  "Check that the file is a complete Parquet file",
			Code:    "FILE006",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was uploaded",
			Action:  "Choose a file in the form and submit again",
			Code:    "FILE007",
		},
	},

	// =========================================================================
	// Source Errors (SRC001-SRC002)
	// =========================================================================
	{
		pattern: "connection refused",
		msg: UserMessage{
			Message: "Unable to connect to database",
			Action:  "Please try again in a few moments",
			Code:    "SRC001",
		},
	},
	{
		pattern: "query failed",
		msg: UserMessage{
			Message: "The database rejected the query",
			Action:  "Check the SQL and the referenced tables",
			Code:    "SRC002",
		},
	},

	// =========================================================================
	// Check Errors (CHK001-CHK004)
	// =========================================================================
	{
		pattern: "too many concurrent checks",
		msg: UserMessage{
			Message: "System is busy processing other checks",
			Action:  "Please wait a moment and try again",
			Code:    "CHK001",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "CHK002",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or check your connection",
			Code:    "CHK003",
		},
	},
	{
		pattern: "rate limit exceeded",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Wait a minute before sending more checks",
			Code:    "CHK004",
		},
	},

	// =========================================================================
	// Auth Errors (AUTH001-AUTH002)
	// =========================================================================
	{
		pattern: "missing api key",
		msg: UserMessage{
			Message: "API key required",
			Action:  "Send the key in the X-API-Key header",
			Code:    "AUTH001",
		},
	},
	{
		pattern: "invalid api key",
		msg: UserMessage{
			Message: "API key is not valid",
			Action:  "Check the key with your administrator",
			Code:    "AUTH002",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
//
// Example:
//
//	err := &MissingColumnsError{Columns: []string{"C"}}
//	msg := MapError(err)
//	// msg.Code == "COL001"
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

// IsUserFacing reports whether err matches a known pattern rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError wraps a technical error with a user-friendly message.
type UserError struct {
	Technical error       // Original technical error for logging
	User      UserMessage // User-friendly message for display
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err to a UserError. Returns nil if err is nil.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{
		Technical: err,
		User:      MapError(err),
	}
}
