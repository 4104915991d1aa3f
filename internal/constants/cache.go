package constants

import "time"

const (
	UserCachePrefix     = "user"     // Authenticated user by id (CacheBuilder adds colon)
	LibraryCachePrefix  = "library"  // Owned-games list by userID
	WishlistCachePrefix = "wishlist" // Wishlisted-games list by userID

	UserCacheExpiry    = time.Hour
	LibraryCacheExpiry = 12 * time.Hour
)
