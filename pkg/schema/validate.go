package schema

import "sort"

// Schema is a map of field names to their expected types.
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with all validation failures found, ordered by field name.
// Fields present in data but absent from the schema are not reported.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		// No schema = no validation
		return nil
	}

	fields := make([]string, 0, len(schema))
	for name := range schema {
		fields = append(fields, name)
	}
	sort.Strings(fields)

	var errs []error

	for _, fieldName := range fields {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists || value == nil {
			if _, optional := fieldType.(*OptionalType); optional {
				continue
			}
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: "required",
			})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{
				Key:    fieldName,
				Reason: err.Error(),
				Value:  value,
				Err:    err,
			})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}

	return nil
}
