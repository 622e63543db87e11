// httpcontroller/routes.go
package httpcontroller

import (
	"embed"
	"html/template"

	"github.com/labstack/echo/v4"
)

//go:embed views/*.html
var ViewsFs embed.FS

// initRoutes initializes the routes for the server.
func (s *Server) initRoutes() {
	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(ViewsFs, "views/*.html")
	if err != nil {
		s.Echo.Logger.Fatal(err)
	}
	s.Echo.Renderer = &TemplateRenderer{templates: tmpl, logger: s.Echo.Logger}

	h := s.Handlers

	// Public routes
	s.Echo.GET("/", h.Index)
	s.Echo.GET("/faq", h.FAQ)
	s.Echo.GET("/register", h.RegisterForm)
	s.Echo.POST("/register", h.Register)
	s.Echo.GET("/login", h.LoginForm)
	s.Echo.POST("/login", h.Login)
	s.Echo.GET("/logout", h.Logout)

	if s.Metrics != nil {
		s.Echo.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}

	// Authenticated routes
	authed := s.Echo.Group("", s.Sessions.LoginRequired(s.DS))
	authed.GET("/dashboard", h.Dashboard)
	authed.GET("/profile", h.Profile)
	authed.POST("/profile", h.UpdateProfile)

	authed.GET("/disease-detection", h.DetectionForm)
	authed.POST("/disease-detection", h.Detect)
	authed.GET("/detection-result/:id", h.DetectionResult)
	authed.GET("/disease-history", h.History)
	authed.GET("/disease-history/export", h.DownloadDetectionHistory)
	authed.POST("/delete-detection/:id", h.DeleteDetection)
	authed.POST("/clear-all-detections", h.ClearDetections)
	authed.GET("/download-detection-pdf/:id", h.DownloadReport)
	authed.GET("/uploads/:name", h.ServeUpload)

	authed.GET("/market-prices", h.MarketPrices)
	authed.POST("/update-prices", h.UpdatePrices)
	authed.GET("/price-prediction", h.PricePrediction)
	authed.GET("/market-prices/export", h.DownloadPriceHistory)

	authed.GET("/smart-irrigation", h.IrrigationPage)
	authed.POST("/smart-irrigation", h.IrrigationAction)
	authed.POST("/clear-all-irrigation", h.ClearIrrigation)

	authed.GET("/weather-advisory", h.WeatherAdvisory)

	// Admin routes
	admin := s.Echo.Group("/admin", s.Sessions.LoginRequired(s.DS), s.Sessions.AdminRequired())
	admin.GET("", h.AdminDashboard)
	admin.GET("/users", h.AdminUsers)
	admin.GET("/detections", h.AdminDetections)
	admin.POST("/update-prices", h.AdminUpdatePrices)
	admin.GET("/settings", h.AdminSettings)
	admin.POST("/settings/update", h.AdminUpdateSettings)
	admin.POST("/settings/reset/:key", h.AdminResetSetting)
	admin.GET("/settings/export/:type", h.AdminExport)
}
