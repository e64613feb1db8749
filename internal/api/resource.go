package api

import (
	"context"  // Context for store and Redis operations
	"errors"   // Error inspection
	"fmt"      // Cache key formatting
	"io"       // Empty body detection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"time"     // Time durations

	"inventory_system/internal/domain" // Importing domain models
	"inventory_system/internal/store"  // Resource store
	"inventory_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

const (
	cachePrefix = "inventory:"     // Every cached response lives under this prefix
	cacheTTL    = 60 * time.Second // Lifetime of a cached listing
)

// Resource serves the CRUD contract shared by kategori, barang and detail_barang.
// In is the request body, T the stored row and R the row returned by reads.
type Resource[In Input[T], T any, R any] struct {
	Name        string                 // Resource name used in routes and messages
	Repo        store.Repository[T, R] // Backing store
	Cache       *redis.Client          // Optional response cache
	WithTotal   bool                   // Include the total row count in listings
	SearchPath  string                 // Route of the search endpoint, relative to the group
	SearchParam string                 // Path parameter holding the search keyword
	Dependents  []string               // Resources whose cached reads embed this one
}

// listResponse is the body of list and search responses
type listResponse[R any] struct {
	Msg    string `json:"msg"`             // Status message
	Total  *int64 `json:"total,omitempty"` // Total matching rows, when enabled
	Data   []R    `json:"data"`            // Current page
	Cached bool   `json:"cached"`          // Indicate response is from cache
}

// NewKategoriResource wires the kategori endpoints
func NewKategoriResource(repo store.Repository[domain.Kategori, domain.Kategori], rdb *redis.Client) *Resource[KategoriInput, domain.Kategori, domain.Kategori] {
	return &Resource[KategoriInput, domain.Kategori, domain.Kategori]{
		Name:        "kategori",
		Repo:        repo,
		Cache:       rdb,
		WithTotal:   true,
		SearchPath:  "/search/:keyword",
		SearchParam: "keyword",
		Dependents:  []string{"barang"}, // Barang reads carry nama_kategori
	}
}

// NewBarangResource wires the barang endpoints
func NewBarangResource(repo store.Repository[domain.Barang, domain.BarangView], rdb *redis.Client) *Resource[BarangInput, domain.Barang, domain.BarangView] {
	return &Resource[BarangInput, domain.Barang, domain.BarangView]{
		Name:        "barang",
		Repo:        repo,
		Cache:       rdb,
		WithTotal:   true,
		SearchPath:  "/search/:keyword",
		SearchParam: "keyword",
	}
}

// NewDetailBarangResource wires the detail_barang endpoints, searched by serial number
func NewDetailBarangResource(repo store.Repository[domain.DetailBarang, domain.DetailBarang], rdb *redis.Client) *Resource[DetailBarangInput, domain.DetailBarang, domain.DetailBarang] {
	return &Resource[DetailBarangInput, domain.DetailBarang, domain.DetailBarang]{
		Name:        "detail_barang",
		Repo:        repo,
		Cache:       rdb,
		SearchPath:  "/search/sn/:serial_number",
		SearchParam: "serial_number",
		Dependents:  []string{"barang"}, // Barang reads carry detail_count
	}
}

// Register mounts the resource endpoints on g
func (res *Resource[In, T, R]) Register(g *gin.RouterGroup) {
	g.POST("", res.CreateHandler())
	g.GET("", res.ListHandler())
	g.GET("/:id", res.GetHandler())
	g.GET(res.SearchPath, res.SearchHandler())
	g.PUT("/:id", res.UpdateHandler())
	g.DELETE("/:id", res.DeleteHandler())
}

// CreateHandler validates the body, rejects duplicates and inserts the row
func (res *Resource[In, T, R]) CreateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := res.bind(c) // Bind and validate the body
		if err != nil {
			respondError(c, err)
			return
		}
		ctx := c.Request.Context()
		// Fast path; the unique index below is the authoritative check
		exists, err := res.Repo.Exists(ctx, &row, 0)
		if err != nil {
			res.fail(c, "create", err)
			return
		}
		if exists {
			respondError(c, ConflictError("Failed to insert "+res.Name))
			return
		}
		id, err := res.Repo.Create(ctx, &row)
		if store.IsDuplicate(err) {
			respondError(c, ConflictError("Failed to insert "+res.Name))
			return
		}
		if err != nil {
			res.fail(c, "create", err)
			return
		}
		res.invalidate(ctx)
		logrus.WithFields(logrus.Fields{
			"resource": res.Name, // Resource name
			"id":       id,       // Generated ID
		}).Info("Row created")
		c.JSON(http.StatusCreated, gin.H{"msg": "Successfully created " + res.Name, "id": id})
	}
}

// ListHandler returns one page of rows
func (res *Resource[In, T, R]) ListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		page := parsePage(c)
		cacheKey := fmt.Sprintf("%s%s:list:page=%d:limit=%d", cachePrefix, res.Name, page.Number, page.Limit)
		res.respondList(c, cacheKey, "Successfully get all "+res.Name, "There is no data in "+res.Name,
			func(ctx context.Context) ([]R, error) { return res.Repo.List(ctx, page) },
			res.Repo.Count,
		)
	}
}

// SearchHandler returns one page of rows whose name or serial number contains the keyword
func (res *Resource[In, T, R]) SearchHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		keyword := c.Param(res.SearchParam)
		page := parsePage(c)
		cacheKey := fmt.Sprintf("%s%s:search:%s:page=%d:limit=%d", cachePrefix, res.Name, keyword, page.Number, page.Limit)
		res.respondList(c, cacheKey, "Successfully found "+res.Name, "Data not found in "+res.Name,
			func(ctx context.Context) ([]R, error) { return res.Repo.Search(ctx, keyword, page) },
			func(ctx context.Context) (int64, error) { return res.Repo.CountMatching(ctx, keyword) },
		)
	}
}

// GetHandler returns a single row
func (res *Resource[In, T, R]) GetHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			respondError(c, NotFoundError("Data not found in "+res.Name))
			return
		}
		row, err := res.Repo.FindByID(c.Request.Context(), id)
		if store.IsNotFound(err) {
			respondError(c, NotFoundError("Data not found in "+res.Name))
			return
		}
		if err != nil {
			res.fail(c, "get", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"msg": "Successfully get " + res.Name, "data": row})
	}
}

// UpdateHandler validates the body and overwrites the row; the row may keep its own unique key
func (res *Resource[In, T, R]) UpdateHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		row, err := res.bind(c) // Bind and validate the body
		if err != nil {
			respondError(c, err)
			return
		}
		id, ok := parseID(c)
		if !ok {
			respondError(c, NotFoundError("Data not found in "+res.Name))
			return
		}
		ctx := c.Request.Context()
		exists, err := res.Repo.Exists(ctx, &row, id)
		if err != nil {
			res.fail(c, "update", err)
			return
		}
		if exists {
			respondError(c, ConflictError("Failed to update "+res.Name))
			return
		}
		err = res.Repo.Update(ctx, id, &row)
		switch {
		case store.IsNotFound(err):
			respondError(c, NotFoundError("Data not found in "+res.Name))
			return
		case store.IsDuplicate(err):
			respondError(c, ConflictError("Failed to update "+res.Name))
			return
		case err != nil:
			res.fail(c, "update", err)
			return
		}
		res.invalidate(ctx)
		logrus.WithFields(logrus.Fields{
			"resource": res.Name, // Resource name
			"id":       id,       // Updated ID
		}).Info("Row updated")
		c.JSON(http.StatusOK, gin.H{"msg": "Successfully updating " + res.Name})
	}
}

// DeleteHandler removes the row without touching rows that reference it
func (res *Resource[In, T, R]) DeleteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			respondError(c, ValidationError("Data not exists in "+res.Name))
			return
		}
		ctx := c.Request.Context()
		err := res.Repo.Delete(ctx, id)
		if store.IsNotFound(err) {
			respondError(c, ValidationError("Data not exists in "+res.Name))
			return
		}
		if err != nil {
			res.fail(c, "delete", err)
			return
		}
		res.invalidate(ctx)
		logrus.WithFields(logrus.Fields{
			"resource": res.Name, // Resource name
			"id":       id,       // Deleted ID
		}).Info("Row deleted")
		c.JSON(http.StatusOK, gin.H{"msg": "Successfully deleting " + res.Name})
	}
}

// respondList serves a paginated listing from the cache or the store. An empty page is a 404.
func (res *Resource[In, T, R]) respondList(
	c *gin.Context,
	cacheKey, okMsg, emptyMsg string,
	fetch func(ctx context.Context) ([]R, error),
	count func(ctx context.Context) (int64, error),
) {
	ctx := c.Request.Context()
	var cached listResponse[R]
	// If cached data found, return it
	found, err := utils.GetCache(ctx, res.Cache, cacheKey, &cached)
	if err == nil && found {
		cached.Cached = true // Indicate response is from cache
		c.JSON(http.StatusOK, cached)
		return
	}
	rows, err := fetch(ctx)
	if err != nil {
		res.fail(c, "list", err)
		return
	}
	if len(rows) == 0 {
		respondError(c, NotFoundError(emptyMsg))
		return
	}
	resp := listResponse[R]{Msg: okMsg, Data: rows}
	if res.WithTotal {
		total, err := count(ctx)
		if err != nil {
			res.fail(c, "count", err)
			return
		}
		resp.Total = &total
	}
	// Cache the response for future requests
	if err := utils.SetCache(ctx, res.Cache, cacheKey, resp, cacheTTL); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to cache listing")
	}
	c.JSON(http.StatusOK, resp)
}

// bind decodes and validates the request body
func (res *Resource[In, T, R]) bind(c *gin.Context) (T, error) {
	var in In
	var zero T
	if err := c.ShouldBindJSON(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return zero, ValidationError(MsgBodyEmpty) // No body at all
		}
		return zero, ValidationError(MsgInvalidRequest)
	}
	if in.IsEmpty() {
		return zero, ValidationError(MsgBodyEmpty)
	}
	if err := in.Validate(); err != nil {
		return zero, err
	}
	return in.Row(), nil
}

// fail logs an unexpected store failure and answers with a generic error
func (res *Resource[In, T, R]) fail(c *gin.Context, op string, err error) {
	logrus.WithFields(logrus.Fields{
		"resource":  res.Name,    // Resource name
		"operation": op,          // Failed operation
		"error":     err.Error(), // Error message
	}).Error("Store operation failed")
	respondError(c, InternalError())
}

// invalidate drops the cached reads of this resource and of its dependents, then the dashboard
func (res *Resource[In, T, R]) invalidate(ctx context.Context) {
	for _, name := range append([]string{res.Name}, res.Dependents...) {
		if err := utils.DeleteCachePrefix(ctx, res.Cache, cachePrefix+name+":"); err != nil {
			logrus.WithFields(logrus.Fields{
				"resource": name,        // Resource whose listings are stale
				"error":    err.Error(), // Redis failure
			}).Warn("Failed to invalidate cache")
		}
	}
	if err := utils.DeleteCache(ctx, res.Cache, dashboardCacheKey); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to invalidate dashboard cache")
	}
}

// parsePage reads page and limit from the query, falling back to 1 and 10
func parsePage(c *gin.Context) store.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return store.NewPage(page, limit)
}

// parseID reads the :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
