package testsupport

// Sample commentary shared by package tests.
const (
	// EnglishCommentary yields two timeline rows: 23' with goal and Messi,
	// 45' with goal, assist, yellow_card and four names.
	EnglishCommentary = "23' GOAL! Messi scores a brilliant goal after a perfect assist from Neymar\n45' Yellow card for Sergio Ramos"

	// SpanishCommentary yields one row at 23' tagged "goal, Messi".
	SpanishCommentary = "23' ¡GOL! Messi anota un gol brillante"

	// TranscriptCommentary mimics formatted WhisperX output.
	TranscriptCommentary = "0:30 Amazing goal by Messi from the edge of the box\n1:45 Ronaldo scores from the spot"
)
