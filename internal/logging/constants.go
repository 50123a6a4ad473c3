package logging

// Field names shared by every component that logs, so statement runs can be
// filtered by message or file regardless of which command produced them.
const (
	FieldFile           = "file_path"
	FieldInputFile      = "input_file"
	FieldOutputFile     = "output_file"
	FieldDirectory      = "directory"
	FieldMessageID      = "message_id"
	FieldStatementID    = "statement_id"
	FieldStatementCount = "statements"
	FieldEntryCount     = "entries"
	FieldRowCount       = "rows"
	FieldFormat         = "format"
	FieldDelimiter      = "delimiter"
	FieldWorkers        = "workers"
	FieldOperation      = "operation"
	FieldError          = "error"
	FieldDuration       = "duration_ms"
)
