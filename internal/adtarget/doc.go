// Package adtarget picks merchandise to advertise alongside match highlights.
//
// A Targeter resolves the player named in a highlight description, first via
// the optional cloud entity recognizer and then through local phrase
// patterns, and maps the result onto a small merchandise catalog. Plan turns
// goal highlights into timed overlay placements.
package adtarget
