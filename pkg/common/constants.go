package common

const (
	// NotificationTypeStockAlert tags notifications emitted by the price
	// alert engine.
	NotificationTypeStockAlert = "STOCK_ALERT"

	// Price change directions.
	DirectionUp   = "UP"
	DirectionDown = "DOWN"

	// ChatRoleUser and ChatRoleAssistant tag stored conversation turns.
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"

	// RedisKeyAlertCooldown marks an active cooldown for a (user, symbol)
	// pair; set with a TTL of the user's cooldown window.
	RedisKeyAlertCooldown = "alert_cooldown:%d:%s"
)
