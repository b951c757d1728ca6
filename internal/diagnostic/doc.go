// Package diagnostic provides the two error channels of the generator.
//
//   - Diagnostics: recoverable, positioned reports about malformed
//     directives. The struct that carries them gets no generated method,
//     everything else keeps going.
//   - FatalError: unrecoverable precondition violations (wrong
//     declaration shape, empty configuration, embedded fields). A fatal
//     error aborts the whole run before anything is written.
package diagnostic
