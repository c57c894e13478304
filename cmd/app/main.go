package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"moneyflow/cmd/fx/assistant_fx"
	"moneyflow/cmd/fx/config_fx"
	"moneyflow/cmd/fx/controllers_fx"
	"moneyflow/cmd/fx/db_fx"
	"moneyflow/cmd/fx/edit_request_fx"
	"moneyflow/cmd/fx/kvstore_fx"
	"moneyflow/cmd/fx/planner_fx"
	"moneyflow/cmd/fx/trip_fx"
	"moneyflow/internal/api/controllers"
	"moneyflow/internal/config"
	"moneyflow/pkg/middleware"
	"moneyflow/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		config_fx.Module,
		db_fx.Module,
		kvstore_fx.Module,
		planner_fx.Module,
		trip_fx.Module,
		assistant_fx.Module,
		edit_request_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type routerParams struct {
	fx.In

	Config                *config.Config
	Log                   *zap.Logger
	AssistantController   *controllers.AssistantController
	TripController        *controllers.TripController
	EditRequestController *controllers.EditRequestController
	PreferenceController  *controllers.PreferenceController
}

func ProvideRouter(p routerParams) *gin.Engine {
	if !p.Config.Log.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(p.Config.Server.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	r.GET("/health", func(c *gin.Context) {
		utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
	})

	auth := r.Group("/")
	auth.Use(middleware.JWTAuthMiddleware([]byte(p.Config.Auth.JWTSecret)))

	assistantGroup := auth.Group("/assistant")
	assistantGroup.POST("/messages", p.AssistantController.SendMessage)
	assistantGroup.GET("/history", p.AssistantController.GetHistory)
	assistantGroup.DELETE("/history", p.AssistantController.ClearHistory)

	tripGroup := auth.Group("/trips")
	tripGroup.POST("", p.TripController.CreateTrip)
	tripGroup.GET("/:tripId", p.TripController.GetTrip)
	tripGroup.POST("/:tripId/changes", p.TripController.ApplyChanges)
	tripGroup.POST("/:tripId/activities/:activityId/check-in", p.TripController.CheckIn)
	tripGroup.POST("/:tripId/expenses", p.TripController.AddExpense)
	tripGroup.GET("/:tripId/budget", p.TripController.GetBudget)
	tripGroup.POST("/:tripId/edit-requests", p.EditRequestController.CreateEditRequest)

	auth.POST("/expenses", p.TripController.RecordExpense)

	editGroup := auth.Group("/edit-requests")
	editGroup.GET("/pending", p.EditRequestController.ListPending)
	editGroup.GET("/pending/count", p.EditRequestController.PendingCount)
	editGroup.POST("/:requestId/approve", p.EditRequestController.Approve)
	editGroup.POST("/:requestId/reject", p.EditRequestController.Reject)

	userGroup := auth.Group("/users/me")
	userGroup.GET("/last-trip", p.PreferenceController.GetLastTrip)
	userGroup.PUT("/last-trip", p.PreferenceController.SetLastTrip)
}
