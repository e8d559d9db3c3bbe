package logging

// Field name constants for structured logging. Constants prevent typos and
// keep key names uniform across commands.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldConfig = "config"
	FieldOutput = "output"

	// Document fields.
	FieldFlavor = "flavor"
	FieldBytes  = "bytes"
	FieldUTF16  = "utf16"
	FieldLines  = "lines"
	FieldNodes  = "nodes"
	FieldErrors = "errors"

	// Edit fields.
	FieldEdits    = "edits"
	FieldRange    = "range"
	FieldAffected = "affected"
	FieldWrite    = "write"

	// Inspect fields.
	FieldSpans = "spans"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
