package domain

// Mention is one inbound message summoning the bot.
type Mention struct {
	// Fullname is the transport handle used to reply to and mark the
	// message read.
	Fullname  string
	Author    string
	Subreddit *string // nil for private messages
	Body      string
}
