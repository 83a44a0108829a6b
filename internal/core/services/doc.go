// Package services implements the driving ports: corpus loading and
// caching, TF-IDF ranking with the optional popularity blend, the review
// queue and settings.
//
// Services reach infrastructure only through the driven ports. Adapters
// are wired in by cmd/tristep.
package services
