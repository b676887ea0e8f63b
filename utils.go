package main

import "strings"

// Slack requires these characters escaped in message text so that user
// fragments cannot be parsed as control sequences.
var messageTextEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

func escapeMessageText(s string) string {
	return messageTextEscaper.Replace(s)
}
