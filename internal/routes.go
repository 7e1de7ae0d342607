package internal

import (
	"kinstore/internal/controllers"
	"kinstore/internal/providers"
	"net/http"
)

func InitRoutes(
	offers *controllers.OfferController,
	products *controllers.ProductController,
	upload *controllers.UploadController,
	chat *controllers.ChatController,
	auth *controllers.AuthController,
	admin *controllers.AdminAuthController,
) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/api/offers", http.HandlerFunc(offers.List))
	routers.Get("/api/offers/carousel", http.HandlerFunc(offers.Carousel))
	routers.Get("/api/offers/{id}", http.HandlerFunc(offers.Get))
	routers.Post("/api/offers", http.HandlerFunc(offers.Save))

	routers.Get("/api/products", http.HandlerFunc(products.List))
	routers.Get("/api/products/{id}", http.HandlerFunc(products.Get))
	routers.Post("/api/products", http.HandlerFunc(products.Create))

	routers.Post("/api/upload", http.HandlerFunc(upload.Upload))

	routers.Get("/api/chat", http.HandlerFunc(chat.Get))
	routers.Post("/api/chat", http.HandlerFunc(chat.Apply))

	routers.Post("/api/auth/register", http.HandlerFunc(auth.Register))
	routers.Post("/api/auth/login", http.HandlerFunc(auth.Login))
	routers.Post("/api/auth/logout", http.HandlerFunc(auth.Logout))
	routers.Get("/api/auth/status", http.HandlerFunc(auth.Status))

	routers.Post("/api/admin/auth", http.HandlerFunc(admin.Login))
	routers.Get("/api/admin/auth/status", http.HandlerFunc(admin.Status))
	routers.Post("/api/admin/auth/logout", http.HandlerFunc(admin.Logout))
	return routers
}
