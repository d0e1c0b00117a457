// Package extract recovers declared names from a C token stream.
//
// It is not a C parser. Declarations are found by local pattern matching at
// statement boundaries with shallow nesting counters, and anything that does
// not look like a declaration is skipped. Missing a declaration is acceptable;
// reporting a name that was never declared is not.
//
// Extraction runs in three passes over the token slice:
//
//  1. preprocessor directives are consumed line by line; #define yields
//     MacroObject/MacroFunction names and the directive tokens are removed;
//  2. the remaining delimiters are matched, the stream is truncated at the
//     first unmatched closer and a jump table for skipping groups is built;
//  3. statements are parsed at file, block and struct scope.
package extract
