// Package validator implements the family validators and the validation
// policy that decides whether an API gateway may import a document.
//
// A Validator resolves a classified document through a resolver.Resolver,
// classifies the resolver's messages into diagnostics, runs the semantic
// checks the resolvers do not perform and produces a Report with a Verdict.
//
// # Levels
//
//   - LevelParseOnly (0): no diagnostics are emitted; the verdict only says
//     whether a resolved document came back.
//   - LevelCompat (1): resolver messages are reported as warnings. A document
//     that still resolves passes with warnings.
//   - LevelFull (2): resolver messages are errors, malformed messages are
//     explained by a lenient secondary parse and the semantic checks run.
//
// # Semantic checks
//
// At LevelFull the validator reports, without short-circuiting:
//
//   - an absent or empty paths object
//   - paths that declare no operation
//   - method keys whose operation value is null
//   - the first pair of paths that differ only by a trailing slash and
//     declare the same HTTP method
//
// # Wrong family
//
// When the resolver reports the validator's own discriminator as missing,
// Validate returns an *oaserrors.WrongFamilyError together with a report
// holding that diagnostic. The caller decides whether to try the other family.
//
// # Usage
//
//	v, err := validator.New(validator.WithLevel(validator.LevelFull))
//	if err != nil {
//		return err
//	}
//	report, err := v.Validate(ctx, doc, doc.Family())
//	if errors.Is(err, oaserrors.ErrWrongFamily) {
//		report, err = v.Validate(ctx, doc, doc.Family().Other())
//	}
package validator
