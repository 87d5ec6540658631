// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"

	// Highlighting fields.
	FieldLanguage = "language"
	FieldTokens   = "tokens"
	FieldBlocks   = "blocks"
	FieldFormat   = "format"

	// Configuration fields.
	FieldConfig    = "config"
	FieldFlavor    = "flavor"
	FieldJobs      = "jobs"
	FieldLanguages = "languages"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"
	FieldTokensTotal     = "tokens_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
