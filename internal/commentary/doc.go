// Package commentary implements the match commentary analysis engine.
//
// Analysis runs as a fixed pipeline over the raw text:
//
//   - ExtractTimestamps finds "MM:SS", "HH:MM:SS", "N'" and "N min" marks.
//   - ExtractEvents classifies keywords into event tags using a Profile.
//   - ExtractEntities finds known players, known teams, and capitalized names.
//   - Correlate attaches events and entities to each timestamp by character
//     distance and captures the surrounding context.
//   - FormatRows renders the timeline for display; Highlights projects it for
//     advertisement targeting.
//
// All offsets are character offsets, not bytes. Matching uses Unicode word
// boundaries so accented keywords such as "anotó" behave like ASCII ones.
//
// Profiles are immutable and cached; an Analyzer is a pure function of its
// profile and the input text and is safe for concurrent use.
package commentary
