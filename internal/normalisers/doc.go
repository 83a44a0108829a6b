// Package normalisers provides implementations of the Normaliser interface
// for the corpus datasets. Each normaliser knows how to parse and clean the
// CSV export of one corpus kind into records ready for vectorisation.
//
// Normalisers are registered with the Registry at startup.
package normalisers
