package common

const (
	AppCartService       = "cart-service"
	AppOrderService      = "order-service"
	AppProductService    = "product-service"
	AppRestaurantService = "restaurant-service"
	AppMain              = "feastly"

	AudienceCustomer = "audience-customer"
)
