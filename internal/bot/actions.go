package bot

import (
	"context"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// actionResponses maps each comfort action command to its response lines.
// {user} is replaced with the author's mention.
var actionResponses = map[string][]string{
	"hug": {
		"wraps arms around {user} in a warm, safe hug.",
		"gently pulls {user} into a bear hug.",
		"opens arms wide for {user} — come here, let's hug it out.",
	},
	"headpat": {
		"places a gentle hand on {user}'s head and gives a few soft pats.",
		"ruffles {user}'s hair affectionately.",
		"gives {user} a reassuring pat on the head.",
	},
	"kiss": {
		"presses a soft kiss to {user}'s forehead.",
		"gives {user} a sweet little kiss on the cheek.",
		"leans in and leaves a gentle kiss on {user}'s brow.",
	},
	"uppies": {
		"scoops {user} up into strong arms — uppies granted!",
		"lifts {user} gently and securely.",
		"offers {user} a ride in my arms. Up you go!",
	},
	"snuggle": {
		"pulls {user} close into a long, comforting snuggle.",
		"wraps around {user} like a warm blanket.",
		"settles down beside {user} for a cozy snuggle session.",
	},
	"tuckin": {
		"fluffs the pillows and gently tucks {user} into bed.",
		"draws the blanket up around {user} with a tender smile.",
		"whispers goodnight as {user} gets tucked in safe and sound.",
	},
}

// handleAction posts a random response line for a known action command.
// Unknown commands are silently ignored.
func (b *Bot) handleAction(ctx context.Context, m *discordgo.MessageCreate, action string) {
	lines, ok := actionResponses[action]
	if !ok {
		return
	}
	line := strings.ReplaceAll(lines[b.pick(len(lines))], "{user}", m.Author.Mention())
	b.send(ctx, m.ChannelID, line)
}
