package main

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/fitbot-api/internal/handler"
	"github.com/yourusername/fitbot-api/internal/middleware"
)

// routerDeps содержит обработчики и middleware для сборки роутера.
// RateLimiter и ServiceAuth могут быть nil: тогда лимит советника
// не ставится, а отладочные маршруты и история не регистрируются.
type routerDeps struct {
	Form          *handler.FormHandler
	Questionnaire *handler.QuestionnaireHandler
	Advisor       *handler.AdvisorHandler
	History       *handler.HistoryHandler
	Health        *handler.HealthHandler

	RateLimiter  *middleware.RateLimiter
	AdvisorLimit middleware.RateLimitConfig
	ServiceAuth  *middleware.ServiceAuthMiddleware
}

// corsConfig разрешает вызовы из браузера с любого origin
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "X-Client-Info", "Client-Info", "Apikey", "Api-Key", "Content-Type"},
		ExposeHeaders:   []string{"Content-Length", "Content-Disposition", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:          12 * time.Hour,
	}
}

func setupRouter(deps routerDeps, isProduction bool, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if !isProduction {
		router.Use(gin.Logger())
	}

	// Настройка доверенных прокси для корректной работы c.ClientIP()
	if isProduction {
		if err := router.SetTrustedProxies(nil); err != nil {
			logger.Warn("failed to set trusted proxies", zap.Error(err))
		}
	} else {
		if err := router.SetTrustedProxies([]string{"127.0.0.1", "::1"}); err != nil {
			logger.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	router.Use(cors.New(corsConfig()))

	router.GET("/health", deps.Health.Check)

	api := router.Group("/api")
	{
		api.POST("/form", deps.Form.GetForm)
		api.POST("/questionnaire", deps.Questionnaire.Handle)

		advisorChain := []gin.HandlerFunc{}
		if deps.RateLimiter != nil {
			advisorChain = append(advisorChain, deps.RateLimiter.LimitByIP(deps.AdvisorLimit))
		}
		advisorChain = append(advisorChain, deps.Advisor.Advise)
		api.POST("/ai-fitness-advisor", advisorChain...)

		// Отладочные и сервисные маршруты доступны только с сервисным токеном
		if deps.ServiceAuth != nil {
			serviceRoutes := api.Group("")
			serviceRoutes.Use(deps.ServiceAuth.RequireServiceRole())
			{
				serviceRoutes.POST("/questionnaire-debug", deps.Questionnaire.Debug)

				users := serviceRoutes.Group("/users/:id")
				users.Use(middleware.ExtractUUIDParam("id", "userID"))
				{
					users.GET("/fitness-history", deps.History.List)
					users.GET("/fitness-history/export", deps.History.Export)
				}
			}
		} else {
			logger.Warn("SERVICE_JWT_SECRET is not set: debug and history routes are disabled")
		}
	}

	return router
}
