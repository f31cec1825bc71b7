package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Vault errors
	ErrVaultNotFound  = "VAULT_NOT_FOUND"
	ErrVaultWrite     = "VAULT_WRITE_ERROR"
	ErrSectionInsert  = "SECTION_INSERT_ERROR"
	ErrNoteNotFound   = "NOTE_NOT_FOUND"
	ErrConfigInvalid  = "CONFIG_INVALID"
	ErrConfiguration  = "CONFIGURATION_ERROR"
	ErrInvalidRef     = "INVALID_REFERENCE"
	ErrSectionMissing = "SECTION_NOT_FOUND"
	ErrFieldNotFound  = "FIELD_NOT_FOUND"

	// Script errors
	ErrScriptNotFound = "SCRIPT_NOT_FOUND"
	ErrScriptFailed   = "SCRIPT_FAILED"
	ErrScriptTimeout  = "SCRIPT_TIMEOUT"
	ErrCancelled      = "CANCELLED"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)
