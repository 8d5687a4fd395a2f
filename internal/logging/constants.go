package logging

// Field names shared by every component so that log lines can be filtered
// consistently regardless of which command produced them.
const (
	FieldFile       = "file_path"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldOperation  = "operation"
	FieldCount      = "count"
	FieldRow        = "row"
	FieldHeaders    = "headers"
	FieldKeyword    = "keyword"
	FieldMonth      = "month"
	FieldProfile    = "profile"
	FieldDatasetID  = "dataset_id"
	FieldExtractor  = "extractor"
	FieldDelimiter  = "delimiter"
	FieldEncoding   = "encoding"
	FieldError      = "error"
)
