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
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor  = "flavor"
	FieldJobs    = "jobs"
	FieldCompare = "compare"
	FieldConfig  = "config"

	// Parse fields.
	FieldBytes = "bytes"
	FieldNodes = "nodes"
	FieldDepth = "depth"
	FieldHunks = "hunks"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesParsed     = "files_parsed"
	FieldFilesErrored    = "files_errored"
	FieldFilesDiverged   = "files_diverged"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
