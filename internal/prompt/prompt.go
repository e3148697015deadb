// Package prompt builds the per-message payload sent to the Kindroid API.
// Composition is a pure function over the startup-loaded context and the
// incoming message; no state is carried between messages.
package prompt

// Prompt is the composed payload for one incoming message.
type Prompt struct {
	// Context is the static overlay context loaded at startup.
	Context string
	// Message is the incoming user message, verbatim.
	Message string
	// Author is the display name of the message author.
	Author string
	// Channel is the originating channel ID.
	Channel string
	// Mood is the detected emotional state of the message.
	Mood Mood
}

// Compose builds the payload for one message. Identical inputs always
// produce an identical Prompt.
func Compose(context, message, author, channel string) Prompt {
	return Prompt{
		Context: context,
		Message: message,
		Author:  author,
		Channel: channel,
		Mood:    DetectMood(message),
	}
}
