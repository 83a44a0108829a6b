// Package file provides the TOML configuration store at ~/.tristep/config.toml.
//
// Keys use dot notation ("mail.host") and are written as nested tables.
// Any key can be overridden by an environment variable named TRISTEP_ plus
// the upper-cased key with dots replaced by underscores, e.g.
// TRISTEP_MAIL_PASSWORD for "mail.password". Overrides are never persisted.
package file
