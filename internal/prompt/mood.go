package prompt

import "strings"

// Mood is the detected emotional state of an incoming message. It is
// passed along with the prompt so the personality can adjust its register.
type Mood string

const (
	MoodNeutral        Mood = "neutral"
	MoodNonverbal      Mood = "nonverbal"
	MoodOverstimulated Mood = "overstimulated"
	MoodPanic          Mood = "panic"
	MoodRegression     Mood = "regression"
	MoodDistracted     Mood = "adhd/distracted"
	MoodPlayful        Mood = "playful"
	MoodBedtime        Mood = "bedtime"
)

// moodKeywords maps each non-neutral mood to its trigger words. Order
// matters: the first matching mood wins.
var moodKeywords = []struct {
	mood     Mood
	keywords []string
}{
	{MoodNonverbal, []string{"quiet", "shut down"}},
	{MoodOverstimulated, []string{"overwhelmed", "too much"}},
	{MoodPanic, []string{"panic", "can't breathe"}},
	{MoodRegression, []string{"regress", "blankie"}},
	{MoodDistracted, []string{"adhd", "tabs"}},
	{MoodPlayful, []string{"play", "castle"}},
	{MoodBedtime, []string{"bed", "tired", "sleep"}},
}

// DetectMood classifies a message by keyword. Deterministic; returns
// MoodNeutral when nothing matches.
func DetectMood(message string) Mood {
	lowered := strings.ToLower(message)
	for _, entry := range moodKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.mood
			}
		}
	}
	return MoodNeutral
}
