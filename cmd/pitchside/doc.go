// Command pitchside analyzes soccer commentary: it extracts timestamps,
// events, players, and teams from text or transcribed match video, lists
// highlights with merchandise placements, and serves the same analysis over
// HTTP.
package main
