package enum

// --- Order lifecycle (CHECK constrained in DB) ---

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPaid      = "paid"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// --- Staff roles (CHECK constrained in DB) ---

const (
	StaffRoleAdmin = "ADMIN"
	StaffRoleStaff = "STAFF"
)

// --- Settings keys ---

const (
	SettingPickupEnabled = "pickup_enabled"
)

// PickupTimes is the fixed set of pickup-time labels a customer may choose.
// These are labels, not timestamps; the kitchen interprets them.
var PickupTimes = []string{
	"ASAP (20-30 mins)",
	"30 minutes",
	"45 minutes",
	"1 hour",
	"1.5 hours",
	"2 hours",
}

// IsValidPickupTime reports whether s is one of the offered labels.
func IsValidPickupTime(s string) bool {
	for _, t := range PickupTimes {
		if t == s {
			return true
		}
	}
	return false
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusPaid,
		OrderStatusPreparing, OrderStatusReady,
		OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
