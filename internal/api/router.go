package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/cinetrack/cinetrack/internal/app"
	iauth "github.com/cinetrack/cinetrack/internal/auth"
	"github.com/cinetrack/cinetrack/internal/cache"
	"github.com/cinetrack/cinetrack/internal/content"
	"github.com/cinetrack/cinetrack/internal/handlers"
	"github.com/cinetrack/cinetrack/internal/middleware"
	"github.com/cinetrack/cinetrack/internal/models"
	"github.com/cinetrack/cinetrack/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, store cache.Store, contentSvc *content.Service, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if contentSvc == nil {
		return nil, fmt.Errorf("content service must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	userSvc, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	watchlistSvc, err := services.NewListService[models.WatchlistItem](db, "watchlist")
	if err != nil {
		return nil, err
	}
	bucketSvc, err := services.NewListService[models.BucketListItem](db, "bucket list")
	if err != nil {
		return nil, err
	}
	recommendationSvc, err := services.NewListService[models.Recommendation](db, "recommendations")
	if err != nil {
		return nil, err
	}
	publicRecommendationSvc, err := services.NewRecommendationService(db)
	if err != nil {
		return nil, err
	}
	customListSvc, err := services.NewCustomListService(db)
	if err != nil {
		return nil, err
	}
	goalSvc, err := services.NewGoalService(db)
	if err != nil {
		return nil, err
	}
	historySvc, err := services.NewHistoryService(db)
	if err != nil {
		return nil, err
	}
	analyticsSvc, err := services.NewAnalyticsService(db)
	if err != nil {
		return nil, err
	}
	ratingSvc, err := services.NewRatingService(db)
	if err != nil {
		return nil, err
	}
	reviewSvc, err := services.NewReviewService(db)
	if err != nil {
		return nil, err
	}
	catalogSvc, err := services.NewCatalogService(db)
	if err != nil {
		return nil, err
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(middleware.CORSConfig{AllowedOrigins: cfg.CORS.AllowedOrigins}))
	if cfg.Server.RateLimit.Enabled {
		r.Use(middleware.RateLimit(
			middleware.NewCacheRateStore(store),
			cfg.Server.RateLimit.MaxRequests,
			cfg.Server.RateLimit.Window,
		))
	}

	r.NoRoute(middleware.NotFoundHandler)

	// Public endpoints
	r.GET("/health", handlers.Health())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := handlers.NewAuthHandler(userSvc, jwt)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Protected routes
	requireAuth := middleware.Auth(jwt, userSvc)

	api := r.Group("/api/v1")
	api.Use(requireAuth)

	api.GET("/auth/me", authHandler.Me)

	contentHandler := handlers.NewContentHandler(contentSvc, catalogSvc)
	contentGroup := api.Group("/content")
	{
		contentGroup.GET("/search", contentHandler.Search)
		contentGroup.GET("/shows/:tvmaze_id", contentHandler.ShowByID)
		contentGroup.GET("/shows/:tvmaze_id/credits", contentHandler.Credits)
		contentGroup.GET("/shows/:tvmaze_id/similar", contentHandler.Similar)
		contentGroup.GET("/shows/:tvmaze_id/details", contentHandler.ShowDetails)
		contentGroup.GET("/genres", contentHandler.Genres)
		contentGroup.GET("/trending", contentHandler.Trending)
		contentGroup.DELETE("/cache", contentHandler.ClearCache)
		contentGroup.DELETE("/cache/:tvmaze_id", contentHandler.ClearCache)
		contentGroup.GET("/schedule", contentHandler.Schedule)
		contentGroup.GET("/schedule/web", contentHandler.WebSchedule)
		contentGroup.GET("/people/search", contentHandler.SearchPeople)
		contentGroup.GET("/people/:person_id", contentHandler.PersonDetails)
		contentGroup.GET("/episodes/:episode_id", contentHandler.EpisodeDetails)
		contentGroup.GET("/lookup", contentHandler.Lookup)
		contentGroup.GET("/updates/shows", contentHandler.ShowUpdates)
		contentGroup.GET("/updates/people", contentHandler.PersonUpdates)
		contentGroup.GET("/index/shows", contentHandler.ShowIndex)
		contentGroup.GET("/index/people", contentHandler.PeopleIndex)
		contentGroup.GET("/db/:content_id", contentHandler.GetStored)
		contentGroup.POST("/db", contentHandler.CreateStored)
	}

	watchlistHandler := handlers.NewWatchlistHandler(watchlistSvc)
	watchlist := api.Group("/watchlist")
	{
		watchlist.GET("", watchlistHandler.List)
		watchlist.POST("", watchlistHandler.Add)
		watchlist.PUT("/:item_id", watchlistHandler.Update)
		watchlist.DELETE("/:item_id", watchlistHandler.Remove)
	}

	bucketHandler := handlers.NewBucketListHandler(bucketSvc)
	bucketlist := api.Group("/bucketlist")
	{
		bucketlist.GET("", bucketHandler.List)
		bucketlist.POST("", bucketHandler.Add)
		bucketlist.PUT("/:item_id", bucketHandler.Update)
		bucketlist.DELETE("/:item_id", bucketHandler.Remove)
	}

	recommendationHandler := handlers.NewRecommendationHandler(recommendationSvc, publicRecommendationSvc)
	recommendations := api.Group("/recommendations")
	{
		recommendations.GET("", recommendationHandler.List)
		recommendations.GET("/public", recommendationHandler.Public)
		recommendations.POST("", recommendationHandler.Add)
		recommendations.PUT("/:item_id", recommendationHandler.Update)
		recommendations.DELETE("/:item_id", recommendationHandler.Remove)
	}

	customListHandler := handlers.NewCustomListHandler(customListSvc)
	lists := api.Group("/lists")
	{
		lists.GET("", customListHandler.List)
		lists.GET("/public", customListHandler.Public)
		lists.POST("", customListHandler.Create)
		lists.GET("/:list_id", customListHandler.Get)
		lists.PUT("/:list_id", customListHandler.Update)
		lists.DELETE("/:list_id", customListHandler.Delete)
		lists.POST("/:list_id/items", customListHandler.AddItem)
		lists.DELETE("/:list_id/items/:item_id", customListHandler.RemoveItem)
	}

	goalHandler := handlers.NewGoalHandler(goalSvc)
	goals := api.Group("/goals")
	{
		goals.GET("", goalHandler.List)
		goals.POST("", goalHandler.Create)
		goals.GET("/achievements", goalHandler.Achievements)
		goals.GET("/achievements/user", goalHandler.UserAchievements)
		goals.POST("/achievements/check", goalHandler.CheckAchievements)
		goals.GET("/:goal_id", goalHandler.Get)
		goals.PUT("/:goal_id", goalHandler.Update)
		goals.DELETE("/:goal_id", goalHandler.Delete)
	}

	analyticsHandler := handlers.NewAnalyticsHandler(historySvc, analyticsSvc)
	analytics := api.Group("/analytics")
	{
		analytics.POST("/history", analyticsHandler.AddHistory)
		analytics.GET("/history", analyticsHandler.ListHistory)
		analytics.GET("/stats/weekly", analyticsHandler.WeeklyStats)
		analytics.GET("/stats/monthly", analyticsHandler.MonthlyStats)
		analytics.GET("/stats/yearly", analyticsHandler.YearlyStats)
		analytics.GET("/stats/heatmap", analyticsHandler.GenreHeatmap)
		analytics.GET("", analyticsHandler.List)
		analytics.POST("", analyticsHandler.Create)
		analytics.GET("/:analytics_id", analyticsHandler.Get)
		analytics.PUT("/:analytics_id", analyticsHandler.Update)
		analytics.DELETE("/:analytics_id", analyticsHandler.Delete)
	}

	ratingHandler := handlers.NewRatingHandler(ratingSvc)
	ratings := api.Group("/ratings")
	{
		ratings.GET("", ratingHandler.List)
		ratings.POST("", ratingHandler.Create)
		ratings.GET("/:rating_id", ratingHandler.Get)
		ratings.PUT("/:rating_id", ratingHandler.Update)
		ratings.DELETE("/:rating_id", ratingHandler.Delete)
	}

	reviewHandler := handlers.NewReviewHandler(reviewSvc)
	reviews := api.Group("/reviews")
	{
		reviews.GET("", reviewHandler.List)
		reviews.POST("", reviewHandler.Create)
		reviews.GET("/:review_id", reviewHandler.Get)
		reviews.PUT("/:review_id", reviewHandler.Update)
		reviews.DELETE("/:review_id", reviewHandler.Delete)
	}

	return r, nil
}
