package api

import (
	"embed"
	"html/template"
	stdhttp "net/http"

	h "mobiletoilet/internal/http/handlers"
	"mobiletoilet/internal/http/middleware"
	"mobiletoilet/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Deps are the handler sets and health checks the router mounts.
type Deps struct {
	Bookings  h.BookingHandlers
	Files     h.FileHandlers
	Checks    map[string]h.Checker
	JWTSecret []byte
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS())

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Logger().Warn("failed to set trusted proxies", zap.Error(err))
	}
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	auth := middleware.AuthOptional(deps.JWTSecret)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DependencyCheck(deps.Checks))
		api.GET("/routes", h.Routes)

		mt := api.Group("/mt/:tenantId/bookings/:acknowledgementIds", auth)
		mt.GET("", deps.Bookings.GetBookingDetails)
		mt.GET("/acknowledgement", deps.Bookings.GetAcknowledgementPDF)
		mt.GET("/receipt", deps.Bookings.GetFeeReceipt)
	}

	r.GET("/citizen/mt/:tenantId/bookings/:acknowledgementIds", auth, deps.Bookings.GetBookingPage)
	r.GET("/filestore/:tenantId/:fileStoreId", deps.Files.GetFile)

	h.SetRouter(r)
	return r
}
