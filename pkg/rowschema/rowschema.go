package rowschema

// Record is one dataset row materialized as a field map. Null values appear
// as nil entries; absent columns have no entry at all.
type Record = map[string]any

// FieldError describes one failed rule on one field.
type FieldError struct {
	Field   string
	Message string
}

// RecordFailure couples a failing record's position in the batch with its
// field errors.
type RecordFailure struct {
	Index  int
	Errors []FieldError
}

// Schema validates one record at a time. An empty result means the record
// passed.
type Schema interface {
	ValidateRecord(rec Record) []FieldError
}

// BulkSchema is an optional Schema extension for implementations that can
// validate a whole batch in one pass. Results carry only the failing
// records, in batch order.
type BulkSchema interface {
	ValidateRecords(recs []Record) []RecordFailure
}
