// Package batch drives documents through classification and validation and
// accumulates the run's counters.
//
// A target is either "location:<path>", naming a file or a directory walked
// depth-first in directory-listing order, or the text of one document.
// Sources yields the documents of a target lazily.
//
// An Orchestrator processes one source through the states
//
//	CLASSIFY → TITLE → VALIDATE_PRIMARY → VALIDATE_FALLBACK? → REPORT
//
// Unparsable text, a missing discriminator or a missing title end the
// document with an INVALID report before any resolver runs. When the
// primary family validator reports that the document belongs to the other
// family, the other validator runs once.
//
// A Runner feeds every source of a target to an Orchestrator and returns the
// Counters. Counters are values owned by one run; nothing is shared between
// runs. With more than one job, documents are processed concurrently while
// reports are emitted and counted in source order.
package batch
