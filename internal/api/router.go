package api

import (
	"inventory_system/internal/domain"     // Importing domain models
	"inventory_system/internal/middleware" // Access control
	"inventory_system/internal/store"      // Stores

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// Dependencies are the collaborators the HTTP layer needs
type Dependencies struct {
	Users        store.UserRepository                                       // Credential store
	Kategori     store.Repository[domain.Kategori, domain.Kategori]         // Kategori store
	Barang       store.Repository[domain.Barang, domain.BarangView]         // Barang store
	DetailBarang store.Repository[domain.DetailBarang, domain.DetailBarang] // Detail barang store
	Summary      SummaryReader                                              // Dashboard counters
	Cache        *redis.Client                                              // Optional response cache
	JWTSecret    string                                                     // Token signing secret
	CORSOrigins  []string                                                   // Allowed CORS origins
}

// NewRouter builds the Gin engine with every route of the API
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New() // Gin router instance
	r.Use(gin.Recovery(), middleware.RequestLogger(), middleware.CORS(deps.CORSOrigins))

	r.GET("/ping", PingHandler) // Liveness check

	v1 := r.Group("/api/v1")

	// Auth routes
	auth := &AuthHandler{Users: deps.Users, JWTSecret: deps.JWTSecret}
	v1.POST("/register", auth.RegisterHandler()) // Registration endpoint
	v1.POST("/login", auth.LoginHandler())       // Login endpoint

	v1.GET("/dashboard", DashboardHandler(deps.Summary, deps.Cache)) // Dashboard endpoint, not gated

	// Resource routes (protected, operator or koordinator only)
	admin := middleware.Protect(deps.JWTSecret, middleware.IsAdmin)
	NewKategoriResource(deps.Kategori, deps.Cache).Register(v1.Group("/kategori", admin...))
	NewBarangResource(deps.Barang, deps.Cache).Register(v1.Group("/barang", admin...))
	NewDetailBarangResource(deps.DetailBarang, deps.Cache).Register(v1.Group("/detail_barang", admin...))

	return r
}
