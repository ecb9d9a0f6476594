package notify

import (
	"fmt"
	"strings"

	"camperwatch/internal/offer"
)

// AliveText is the fixed liveness message sent after prolonged silence
const AliveText = "🤖 Still alive! No new camper offers lately, but I keep watching."

// OfferText renders one offer as a Telegram HTML message
func OfferText(o offer.Offer) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✨ <b>%s -> %s</b>\n", o.Origin, o.Arrival)
	fmt.Fprintf(&b, "%s - %s\n", o.Start, o.End)
	b.WriteString(o.Model)
	if o.Days != "" {
		fmt.Fprintf(&b, "\nDuration: %s days", o.Days)
	}
	fmt.Fprintf(&b, "\n\n<a href='%s'>View offer</a>", o.URL)

	return b.String()
}

// ErrorText renders a fatal run error for best-effort notification
func ErrorText(msg string) string {
	return "❌ Error: " + msg
}
