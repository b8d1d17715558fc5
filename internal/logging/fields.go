package logging

// Field name constants for structured logging.
const (
	FieldError  = "error"
	FieldPath   = "path"
	FieldInput  = "input"
	FieldOutput = "output"
	FieldVault  = "vault"

	// Configuration fields.
	FieldConfig = "config"
	FieldTitle  = "title"
	FieldIndent = "indent"
	FieldBlanks = "blank_lines"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"

	// Conversion fields.
	FieldNotes    = "notes"
	FieldSkipped  = "skipped"
	FieldReason   = "reason"
	FieldBlocks   = "blocks"
	FieldWarnings = "warnings"
	FieldFiles    = "files"

	// Statistics fields.
	FieldPagesWritten   = "pages_written"
	FieldPagesUnchanged = "pages_unchanged"
	FieldPagesErrored   = "pages_errored"
	FieldAssetsCopied   = "assets_copied"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
