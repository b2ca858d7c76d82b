package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"dashdeck/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	gormDB *gorm.DB,
	authHandler *handler.AuthHandler,
	weatherHandler *handler.WeatherHandler,
	reportHandler *handler.ReportHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		sqlDB, err := gormDB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false})
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Auth routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Dashboard action routes
	api.GET("/weather", weatherHandler.Current)
	api.POST("/reports/generate", reportHandler.Generate)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
