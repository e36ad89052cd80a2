package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/mboloapp/mbolo-backend/internal/modules/auth"
	"github.com/mboloapp/mbolo-backend/internal/modules/catalog"
	"github.com/mboloapp/mbolo-backend/internal/modules/favorites"
	"github.com/mboloapp/mbolo-backend/internal/modules/message"
	"github.com/mboloapp/mbolo-backend/internal/modules/order"
	"github.com/mboloapp/mbolo-backend/internal/modules/product"
	"github.com/mboloapp/mbolo-backend/internal/modules/store"
	"github.com/mboloapp/mbolo-backend/internal/modules/user"
	"github.com/mboloapp/mbolo-backend/internal/platform/mongodb"
	"github.com/mboloapp/mbolo-backend/internal/platform/storage"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}

	client, err := mongodb.Connect(context.Background(), os.Getenv("MONGODB_URI"))
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := mongodb.Disconnect(client); err != nil {
			log.Printf("mongodb disconnect: %v", err)
		}
	}()
	db := client.Database(os.Getenv("MONGODB_DATABASE"))
	fmt.Println("Successfully connected to the database!")

	uploader, err := storage.NewCloudinaryUploader(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatal(err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)

	// ── Phase 1: Identity ───────────────────────────────────
	userRepo := user.NewMongoRepository(db)
	userService := user.NewService(userRepo, uploader)

	authService := auth.NewService(userRepo, os.Getenv("JWT_SECRET"))
	auth.NewHandler(authService).RegisterRoutes(router)
	authMw := auth.Middleware(authService)

	user.NewHandler(userService, authMw).RegisterRoutes(router)

	// ── Phase 2: Reference catalog ──────────────────────────
	catalogRepo := catalog.NewMongoRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService, authMw).RegisterRoutes(router)

	// ── Phase 3: Stores & listings ──────────────────────────
	storeRepo := store.NewMongoRepository(db)
	storeService := store.NewService(storeRepo, userRepo, catalogService, uploader)
	store.NewHandler(storeService, authMw).RegisterRoutes(router)

	productRepo := product.NewMongoRepository(db)
	productService := product.NewService(productRepo, storeRepo, uploader)
	product.NewHandler(productService, authMw).RegisterRoutes(router)

	// ── Phase 4: Orders ─────────────────────────────────────
	orderRepo := order.NewMongoRepository(client, db)
	orderService := order.NewService(orderRepo, uploader)
	order.NewHandler(orderService, authMw, os.Getenv("APP_ENV") == "development").RegisterRoutes(router)

	// ── Phase 5: Favorites & messaging ──────────────────────
	favoritesRepo := favorites.NewMongoRepository(db)
	favoritesService := favorites.NewService(favoritesRepo)
	favorites.NewHandler(favoritesService, authMw).RegisterRoutes(router)

	messageRepo := message.NewMongoRepository(db)
	messageService := message.NewService(messageRepo)
	message.NewHandler(messageService, authMw).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	fmt.Printf("Mbolo API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}
