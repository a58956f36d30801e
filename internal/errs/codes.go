package errs

// Machine-readable codes the frontends switch on.
const (
	CodeNoRestaurantAssigned         = "NO_RESTAURANT_ASSIGNED"
	CodeNotRestaurantMember          = "NOT_RESTAURANT_MEMBER"
	CodeInsufficientRole             = "INSUFFICIENT_ROLE"
	CodeRestaurantNotFound           = "RESTAURANT_NOT_FOUND"
	CodeOrderNotFound                = "ORDER_NOT_FOUND"
	CodeOrderInvalidTransition       = "ORDER_INVALID_TRANSITION"
	CodeOrderTypeDisabled            = "ORDER_TYPE_DISABLED"
	CodeOrdersClosed                 = "ORDERS_CLOSED"
	CodeMenuItemUnavailable          = "MENU_ITEM_UNAVAILABLE"
	CodeMinimumOrderNotMet           = "MINIMUM_ORDER_NOT_MET"
	CodeDeliveryZoneNotFound         = "DELIVERY_ZONE_NOT_FOUND"
	CodeTableNotFound                = "TABLE_NOT_FOUND"
	CodeTableTooSmall                = "TABLE_TOO_SMALL"
	CodeDuplicateTableLabel          = "DUPLICATE_TABLE_LABEL"
	CodeReservationNotFound          = "RESERVATION_NOT_FOUND"
	CodeReservationsClosed           = "RESERVATIONS_CLOSED"
	CodeReservationOutsideHours      = "RESERVATION_OUTSIDE_HOURS"
	CodeReservationInvalidTransition = "RESERVATION_INVALID_TRANSITION"
	CodeNoticeNotFound               = "NOTICE_NOT_FOUND"
	CodePushDisabled                 = "PUSH_DISABLED"
)

// Code returns a pointer for the optional code parameters of the constructors.
func Code(code string) *string {
	return &code
}
