// Package schema validates loosely typed documents before they are decoded.
//
// Configuration files arrive as map[string]any (from YAML or JSON). A Schema maps
// field names to Types and Validate reports every field that does not conform,
// aggregated into a single *AggregateError so users see all problems at once.
//
//	s := schema.Schema{
//	    "name":     schema.Optional(schema.String()),
//	    "alphabet": schema.Symbols(),
//	    "head":     schema.Optional(schema.Int()),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        fmt.Println(e)
//	    }
//	}
package schema
