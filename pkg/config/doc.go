// Package config loads and validates supervisor configuration.
//
// A configuration document is a mapping with two known fields:
// "clean_logs" (bool) and "services", a list of service records with
// "name", "exec", "args" and "dir" fields. Documents are accepted as
// JSON or YAML files, inline sources, or already-deserialized maps.
//
// # Architecture
//
// There is no declarative schema language. The document shape is
// expressed procedurally as a validator tree (see Schema and
// ServiceSchema): a Dict whose pair stage dispatches each entry over one
// tuple branch per permitted (field name, value type) pairing. Unknown
// fields and malformed entries are dropped by the tree; the surviving
// map is then decoded into typed Service records, where defaults are
// applied ("dir" → "./") and required fields ("name", "exec") are
// enforced.
//
// Process-level settings — config path, check interval, log level — come
// from the environment via Env/LoadEnv, backed by caarlos0/env with an
// optional .env file.
//
// # Usage
//
//	cfg, err := config.FromFile("config.yaml")
//	if err != nil {
//		// document unreadable, unparsable, or missing required fields
//	}
//	for _, svc := range cfg.Services {
//		// svc.Name, svc.Exec, svc.Args, svc.Dir
//	}
package config
