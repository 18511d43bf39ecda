// Package rowschema defines the contract for validating individual dataset
// rows and ships a declarative, rule-based schema implementation.
//
// The engine materializes rows as Records (field name to value, nil for
// null) and hands them to a Schema. Implementations that can validate a
// whole batch in one pass additionally implement BulkSchema; the engine
// detects that with a single type assertion and skips the row-by-row path.
//
// # Usage
//
//	schema := rowschema.NewSchema(
//		rowschema.F("id", rowschema.Required(), rowschema.Int(), rowschema.Min(1)),
//		rowschema.F("email", rowschema.Required(), rowschema.Str(), rowschema.Match(`@`)),
//		rowschema.F("age", rowschema.Int(), rowschema.Min(0), rowschema.Max(150)),
//	)
//
//	errs := schema.ValidateRecord(rowschema.Record{"id": int64(1), "email": "a@b.co"})
//
// Value rules skip absent and nil fields; only Required rejects them. That
// keeps optional fields cheap to express: declare the field without
// Required and its rules apply only when a value is present.
package rowschema
