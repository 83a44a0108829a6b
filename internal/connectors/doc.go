// Package connectors provides the corpus sources: HTTP(S) export links,
// Google Drive files and local CSV files. Each source knows how to fetch
// the raw bytes of a dataset from one kind of location.
//
// Sources are registered with the Factory at startup.
package connectors
