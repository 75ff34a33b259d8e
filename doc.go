// Package oasguard checks Swagger 2.0 and OpenAPI 3.x documents against the
// import policy of an API gateway before they are deployed.
//
// The checks run in layers. A document is first classified (encoding, spec
// family, declared title), then handed to a resolver for its family, whose
// free-text messages are reclassified into a stable diagnostic taxonomy.
// At full strictness a set of semantic checks that resolvers do not perform
// is added on top: empty resource paths, empty operation sets, null operation
// objects and resource paths that differ only by a trailing slash.
//
// # Packages
//
//   - document: classify raw text into a SpecDocument
//   - walker: collect $ref values and split local from remote references
//   - diagnostic: diagnostic codes, severities and the message rule table
//   - resolver: Swagger 2.0 and OpenAPI 3.x resolution backends
//   - validator: family validators, validation levels and verdicts
//   - batch: source enumeration, per-document state machine and counters
//
// # Validation levels
//
//   - 0: only verify that the resolver renders a document
//   - 1: compatibility mode; resolver messages are reported as warnings
//   - 2: full validation (default); resolver messages are errors and the
//     semantic checks are enforced
//
// # Quick start
//
//	orch, err := batch.NewOrchestrator(batch.WithLevel(validator.LevelFull))
//	if err != nil {
//		log.Fatal(err)
//	}
//	counters, err := batch.NewRunner(orch).Run(ctx, "location:./definitions")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(counters.Summary())
package oasguard
