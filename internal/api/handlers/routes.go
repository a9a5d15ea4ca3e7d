package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/tripnest-api/internal/api/middleware"
)

type Router struct {
	Auth      *AuthHandler
	Trip      *TripHandler
	Place     *PlaceHandler
	Favorite  *FavoriteHandler
	Post      *PostHandler
	User      *UserHandler
	Settings  *SettingsHandler
	Session   *middleware.AuthMiddleware
	RateLimit *middleware.RateLimiter
}

// Register mounts every route on app.
func (r *Router) Register(app *fiber.App) {
	authed := r.Session.AuthMiddleware()
	optional := r.Session.OptionalAuth()
	limited := r.RateLimit.Handler()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	auth := app.Group("/api/v2/auth")
	auth.Post("/register", limited, r.Auth.Register)
	auth.Post("/login", limited, r.Auth.Login)
	auth.Post("/login/2fa", limited, r.Auth.Verify2FA)
	auth.Post("/logout", r.Auth.Logout)
	auth.Get("/me", authed, r.Auth.Me)
	auth.Get("/google", r.Auth.GoogleLogin)
	auth.Get("/google/callback", r.Auth.LoginCallbackHandler)
	auth.Post("/forgot-password", limited, r.Auth.ForgotPassword)
	auth.Post("/verify-otp", limited, r.Auth.VerifyOTP)
	auth.Post("/reset-password", limited, r.Auth.ResetPassword)

	api := app.Group("/api")

	api.Get("/locations", r.Place.ListLocations)
	api.Get("/places", r.Place.Search)
	api.Get("/places/with-location/:id", r.Place.GetWithLocation)
	api.Get("/places/:id/gallery", r.Place.ListGallery)
	api.Post("/places/gallery/upload", authed, r.Place.UploadGallery)
	api.Delete("/places/gallery/:id", authed, r.Place.DeleteGalleryImage)

	api.Get("/trips", authed, r.Trip.ListMine)
	api.Post("/trips", authed, r.Trip.Create)
	api.Get("/trips/public", r.Trip.ListPublic)
	api.Post("/trips/days/:dayId/items", authed, r.Trip.AddItem)
	api.Put("/trips/days/:dayId/order", authed, r.Trip.ReorderDay)
	api.Put("/trips/items/:itemId", authed, r.Trip.UpdateItem)
	api.Delete("/trips/items/:itemId", authed, r.Trip.RemoveItem)
	api.Put("/trips/items/:itemId/order", authed, r.Trip.UpdateOrder)
	api.Get("/trips/:id", optional, r.Trip.Detail)
	api.Put("/trips/:id", authed, r.Trip.Update)
	api.Delete("/trips/:id", authed, r.Trip.Delete)
	api.Post("/trips/:id/copy", authed, r.Trip.Copy)
	api.Post("/trips/:id/cover", authed, r.Trip.UploadCover)
	api.Post("/trips/:id/favorite", authed, r.Favorite.FavoriteTrip)
	api.Delete("/trips/:id/favorite", authed, r.Favorite.UnfavoriteTrip)

	api.Get("/favorites/index", authed, r.Favorite.Index)
	api.Get("/favorites/trips", authed, r.Favorite.ListTrips)
	api.Get("/favorites/list/:listId", authed, r.Favorite.GetList)
	api.Post("/favorites/lists", authed, r.Favorite.CreateList)
	api.Delete("/favorites/lists/:listId", authed, r.Favorite.DeleteList)
	api.Get("/favorites/:userId", authed, r.Favorite.Lists)
	api.Post("/favorites", authed, r.Favorite.AddPlace)
	api.Delete("/favorites", authed, r.Favorite.RemovePlace)

	api.Get("/posts", optional, r.Post.ListPosts)
	api.Post("/posts", authed, r.Post.CreatePost)
	api.Get("/posts/:id", optional, r.Post.GetPost)
	api.Put("/posts/:id", authed, r.Post.UpdatePost)
	api.Delete("/posts/:id", authed, r.Post.RemovePost)
	api.Post("/posts/:id/photos", authed, r.Post.UploadPhotos)
	api.Post("/posts/:id/like", authed, r.Post.ToggleLike)
	api.Post("/posts/:id/bookmark", authed, r.Post.ToggleBookmark)
	api.Get("/posts/:id/comments", r.Post.ListComments)
	api.Post("/posts/:id/comments", authed, r.Post.CreateComment)
	api.Delete("/comments/:id", authed, r.Post.RemoveComment)
	api.Get("/bookmarks", authed, r.Post.ListBookmarks)
	api.Get("/tags", r.Post.ListTags)

	api.Get("/users/:id", optional, r.User.GetProfile)
	api.Get("/users/:id/trips", optional, r.Trip.ListByUser)
	api.Post("/users/:id/follow", authed, r.User.ToggleFollow)
	api.Get("/users/:id/followers", r.User.Followers)
	api.Get("/users/:id/following", r.User.Following)

	api.Get("/settings", authed, r.Settings.GetSettingsInfo)
	api.Put("/settings", authed, r.Settings.UpdateSettings)
	api.Post("/settings/avatar", authed, r.Settings.UploadAvatar)
}
