package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal("MongoDB connection error: ", err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}
	if err := database.EnsureFavoriteIndexes(db); err != nil {
		log.Printf("⚠️ favorite index warning: %v", err)
	}

	r := gin.Default()
	r.Use(middleware.CORS(config.AppEnv.CORSOrigins))
	r.Use(middleware.BodyLimit())

	userAuth := middleware.UserAuth(middleware.MongoUserLookup(db))

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "API is running...")
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(db))
		auth.POST("/login", handlers.Login(db))
		auth.PUT("/profile", userAuth, handlers.UpdateProfile(db))
		auth.PUT("/change-password", userAuth, handlers.ChangePassword(db))
		auth.GET("/login-history", userAuth, handlers.GetLoginHistory())
	}

	reviews := r.Group("/api/reviews")
	{
		reviews.GET("/vehicle/:vehicleId", handlers.GetVehicleReviews(db))
		reviews.POST("", userAuth, handlers.CreateReview(db))
		reviews.GET("/user/:vehicleId", userAuth, handlers.GetUserReview(db))
	}

	feedback := r.Group("/api/feedback")
	{
		feedback.POST("/submit", handlers.SubmitFeedback(db))
		feedback.GET("/all", handlers.GetAllFeedback(db))
		feedback.GET("/:id", handlers.GetFeedbackByID(db))
	}

	testRides := r.Group("/api/test-rides")
	{
		testRides.POST("/book", handlers.BookTestRide(db))
		testRides.GET("/all", handlers.GetAllTestRides(db))
		testRides.GET("/user/:userId", userAuth, handlers.GetUserTestRides(db))
		testRides.GET("/:id", handlers.GetTestRideByID(db))
		testRides.PUT("/:id/status", handlers.UpdateTestRideStatus(db))
		testRides.DELETE("/:id", handlers.CancelTestRide(db))
	}

	favorites := r.Group("/api/favorites")
	favorites.Use(userAuth)
	{
		favorites.POST("/add", handlers.AddFavorite(db))
		favorites.DELETE("/remove/:vehicleId", handlers.RemoveFavorite(db))
		favorites.GET("/user", handlers.GetUserFavorites(db))
		favorites.GET("/check/:vehicleId", handlers.CheckFavorite(db))
		favorites.POST("/toggle", handlers.ToggleFavorite(db))
	}

	sellVehicle := r.Group("/api/sell-vehicle")
	{
		sellVehicle.POST("/submit", userAuth, handlers.SubmitSellVehicle(db))
		sellVehicle.GET("/all", userAuth, handlers.GetAllSellVehicles(db))
		sellVehicle.GET("/user/:userId", userAuth, handlers.GetUserSellVehicles(db))
		sellVehicle.GET("/user/:userId/sold", userAuth, handlers.GetUserSoldVehicles(db))
		sellVehicle.GET("/:id", handlers.GetSellVehicleByID(db))
		sellVehicle.PUT("/:id/status", userAuth, handlers.UpdateSellVehicleStatus(db))
		sellVehicle.DELETE("/:id", userAuth, handlers.DeleteSellVehicle(db))
	}

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal("server error: ", err)
	}
}
