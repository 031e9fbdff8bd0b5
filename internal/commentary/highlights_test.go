package commentary

import (
	"reflect"
	"testing"
)

func TestHighlightsProjection(t *testing.T) {
	entries := []TimelineEntry{
		{Timestamp: Occurrence{Text: "12:00"}, Context: "12:00 quiet"},
		{Timestamp: Occurrence{Text: "23'"}, EventTags: []string{TagGoal, TagAssist}, Context: "23' goal by Messi"},
		{Timestamp: Occurrence{Text: "45'"}, EventTags: []string{TagYellowCard}, Context: "45' booked"},
	}
	got := Highlights(entries)
	want := []Highlight{
		{Type: TagGoal, Description: "23' goal by Messi", Timestamp: "23'"},
		{Type: TagYellowCard, Description: "45' booked", Timestamp: "45'"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Highlights = %+v, want %+v", got, want)
	}
}

func TestFilterHighlights(t *testing.T) {
	all := []Highlight{
		{Type: TagGoal, Timestamp: "1:00"},
		{Type: TagYellowCard, Timestamp: "2:00"},
		{Type: TagCorner, Timestamp: "3:00"},
		{Type: TagAssist, Timestamp: "4:00"},
	}
	goals := FilterHighlights(all, GoalKeywords...)
	if len(goals) != 1 || goals[0].Timestamp != "1:00" {
		t.Fatalf("goal filter = %+v", goals)
	}
	highlights := FilterHighlights(all, HighlightKeywords...)
	if len(highlights) != 3 {
		t.Fatalf("highlight filter = %+v", highlights)
	}
	if !(Highlight{Type: "GOAL"}).Matches("goal") {
		t.Fatal("expected case-insensitive match")
	}
}
