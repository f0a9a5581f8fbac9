package config

import "github.com/dmitrymomot/servicekit/pkg/validator"

// field builds one (key, value type) branch of a record schema.
func field(key string, value validator.Validator) validator.Validator {
	return validator.TupleOf([]validator.Validator{validator.Value(key), value})
}

// ServiceSchema returns the validator tree for a single service record.
// Each entry must satisfy exactly one permitted (key, type) pairing;
// entries that satisfy none are dropped. A missing or invalid "dir"
// cannot be defaulted here because absence is not visible to a per-entry
// schema — defaults are applied during decoding instead.
func ServiceSchema() validator.Validator {
	return validator.Dict(
		validator.Type(validator.KindString),
		validator.Pass(),
		validator.Any([]validator.Validator{
			field("name", validator.Type(validator.KindString)),
			field("exec", validator.Type(validator.KindString)),
			field("args", validator.List(validator.Type(validator.KindString))),
			field("dir", validator.Type(validator.KindString)),
		}),
	)
}

// Schema returns the validator tree for a whole configuration document:
// a mapping with string keys whose known fields are "clean_logs" (bool)
// and "services" (list of service records). Unknown fields and malformed
// service entries are dropped rather than failing the document; required
// fields are enforced by Decode.
func Schema() validator.Validator {
	return validator.Dict(
		validator.Type(validator.KindString),
		validator.Pass(),
		validator.Any([]validator.Validator{
			field("clean_logs", validator.Type(validator.KindBool)),
			field("services", validator.List(ServiceSchema())),
		}),
	)
}
