// Package language resolves user-supplied language identifiers (ISO codes,
// words such as "español", BCP 47 tags) to the commentary languages the
// analysis engine ships profiles for.
//
// All language-related conversions are consolidated here so the CLI, the HTTP
// API, and the WhisperX collaborator agree on what "es-MX" means.
package language
