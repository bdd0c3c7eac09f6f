package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Space errors
	ErrSpaceNotFound    = "SPACE_NOT_FOUND"
	ErrSpaceExists      = "SPACE_EXISTS"
	ErrInvalidSpaceName = "INVALID_SPACE_NAME"

	// Note errors
	ErrNoteNotFound = "NOTE_NOT_FOUND"

	// Editor errors
	ErrEditorFailed = "EDITOR_FAILED"

	// File errors
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Config errors
	ErrConfigInvalid = "CONFIG_INVALID"

	// Input errors
	ErrInvalidInput         = "INVALID_INPUT"
	ErrMissingArgument      = "MISSING_ARGUMENT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnNotesUnreadable = "NOTES_UNREADABLE"
	WarnAuditFailed     = "AUDIT_FAILED"
)
