package redisx

import "time"

const (
	// Browser session identity: hash session:{sid} -> isLoggedIn, name, userId, userRole
	KeySession = "session:%s"

	// Local cart quantity edits: hash cart_draft:{sid} -> {order_item_id: qty}
	KeyCartDraft = "cart_draft:%s"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLSession   = 24 * time.Hour
	TTLCartDraft = 24 * time.Hour
	TTLDedup     = 48 * time.Hour
)
