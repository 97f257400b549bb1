package log

const (
	KeyAppName       = "app"
	KeyTag           = "tag"
	KeyProcess       = "process"
	KeyConfig        = "config"
	KeyRequestID     = "requestId"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeyTraceID       = "traceId"
	KeySpanID        = "spanId"
	KeyToken         = "token"
	KeyDbURL         = "dbURL"
	KeyCacheKey      = "cacheKey"

	KeyCustomerID     = "customerId"
	KeySessionID      = "sessionId"
	KeyCart           = "cart"
	KeyCartItems      = "cartItems"
	KeyCartItemCount  = "cartItemCount"
	KeyOrder          = "order"
	KeyOrders         = "orders"
	KeyOrderID        = "orderId"
	KeyOrderItems     = "orderItems"
	KeyOrderStatus    = "orderStatus"
	KeyProduct        = "product"
	KeyProductID      = "productId"
	KeyQuantity       = "quantity"
	KeyRestaurant     = "restaurant"
	KeyRestaurantID   = "restaurantId"
	KeyTotalAmount    = "totalAmount"
)
