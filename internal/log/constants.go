package log

const (
	KeyAppName            = "app"
	KeyAddressID          = "addressId"
	KeyAmount             = "amount"
	KeyAuthToken          = "authToken"
	KeyBillingDetail      = "billingDetail"
	KeyBody               = "body"
	KeyCacheKey           = "cacheKey"
	KeyCart               = "cart"
	KeyCartID             = "cartId"
	KeyCartItem           = "cartItem"
	KeyCartItemID         = "cartItemId"
	KeyCartItems          = "cartItems"
	KeyCartTotalPrice     = "cartTotalPrice"
	KeyConfig             = "config"
	KeyDbURL              = "dbUrl"
	KeyDelta              = "delta"
	KeyDirection          = "direction"
	KeyEmail              = "email"
	KeyEvent              = "event"
	KeyFilter             = "filter"
	KeyHeader             = "header"
	KeyOrder              = "order"
	KeyOrderID            = "orderId"
	KeyOrderItem          = "orderItem"
	KeyOrderItemID        = "orderItemId"
	KeyOrderItems         = "orderItems"
	KeyOrderItemStatus    = "orderItemStatus"
	KeyOrders             = "orders"
	KeyPathValues         = "pathValues"
	KeyProcess            = "process"
	KeyProduct            = "product"
	KeyProductID          = "productId"
	KeyProducts           = "products"
	KeyQuantity           = "quantity"
	KeyRequest            = "request"
	KeyRequestBody        = "requestBody"
	KeyRequestHeader      = "requestHeader"
	KeyRequestHost        = "host"
	KeyRequestID          = "requestId"
	KeyRequestIP          = "requesterIP"
	KeyRequestMethod      = "requestMethod"
	KeyRequestProcessedAt = "requestProcessedAt"
	KeyRequestURI         = "requestURI"
	KeyRequestURL         = "requestURL"
	KeyRole               = "role"
	KeySpanID             = "spanId"
	KeyTag                = "tag"
	KeyToken              = "token"
	KeyTraceID            = "traceId"
	KeyUserID             = "userId"
	KeyVendorID           = "vendorId"
	KeyWishlist           = "wishlist"
	KeyWishlistID         = "wishlistId"
	KeyWishlistItem       = "wishlistItem"
)
