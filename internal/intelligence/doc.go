// Package intelligence turns free-form status text into structured signal:
// versioned-fact candidates (truths), task drafts, a risk assessment, a notify
// list, a relationship graph and a plain-text briefing.
//
// Every function in this package is pure and total. Unmatched patterns yield
// no record, never an error, and identical input always yields identical output.
// Keyword tables are supplied through Rules when an Analyzer is constructed.
package intelligence
