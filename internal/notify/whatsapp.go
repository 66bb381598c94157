// Package notify holds the outbound messaging channels: chat deep links for
// visitors and inquiry events for staff.
package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsAppLink builds a wa.me deep link pre-filled with text. Non-digit
// characters are stripped from number.
func WhatsAppLink(number, text string) string {
	var digits strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits.String(), escaped)
}

// RentalChatMessage is the templated chat text for a car rental request.
// Blank dates read "To be discussed".
func RentalChatMessage(brand, model, startDate, endDate, message string) string {
	orDiscuss := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "To be discussed"
		}
		return s
	}
	text := fmt.Sprintf("Hello! I'm interested in renting the %s %s.\n\nStart Date: %s\nEnd Date: %s\n\n",
		brand, model, orDiscuss(startDate), orDiscuss(endDate))
	if strings.TrimSpace(message) != "" {
		text += "Message: " + message
	}
	return text
}
