package constants

const (
	AppUserService         = "user-service"
	AppNotificationService = "notification-service"
	AppProductService      = "product-service"
	AppOrderService        = "order-service"
	AppCartService         = "cart-service"
	AppWishlistService     = "wishlist-service"
	AppMigration           = "migration"
	AppMainStorefront      = "main storefront"
	AudienceUser           = "audience-user"
)

const (
	ChannelOrderPlaced = "order-placed"
	TopicOrderPlaced   = "order-placed"
)
