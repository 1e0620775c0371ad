// Package adminapi exposes the HTTP API: authentication, profiles, the
// shop (catalog, cart, orders, promo codes), the forum and events.
package adminapi

// Init registers every API route group. Call after webserver.Init.
func Init() {
	registerAuthRoutes()
	registerUserRoutes()
	registerShopRoutes()
	registerCartRoutes()
	registerOrderRoutes()
	registerPromoRoutes()
	registerLoyaltyRoutes()
	registerForumRoutes()
	registerEventRoutes()
}
