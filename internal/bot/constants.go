package bot

// Discord message and command constants
const (
	MaxDiscordMessageLength = 2000
	OverlayEchoLimit        = 1800
	ShowMemLimit            = 5
	CommandPrefix           = "!"
)
