package cache

import (
	"fmt"
	"time"
)

// DefaultEventTTL covers the provider's redelivery window for webhooks.
const DefaultEventTTL = 24 * time.Hour

func eventKey(eventID string) string {
	return fmt.Sprintf("razorpay:event:%s", eventID)
}
