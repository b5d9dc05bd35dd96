package router

import (
	"budget-tracker/internal/config"
	"budget-tracker/internal/handler"
	"budget-tracker/internal/middleware"
	"budget-tracker/internal/workflow"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine and the route table.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	engine := workflow.NewEngine(db, decimal.NewFromFloat(cfg.App.BudgetCeiling))

	// 登入接口（不需要鉴权）
	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	r.POST("/login", authHandler.Login)

	// 需要登录才能访问的接口
	protected := r.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.Secret, db),
		middleware.AuditMiddleware(db),
	)

	protected.GET("/logout", authHandler.Logout)
	protected.GET("/me", handler.GetMe)

	recordHandler := handler.NewRecordHandler(engine)
	protected.GET("/", recordHandler.ListRecords)
	protected.POST("/add", recordHandler.AddRecord)
	protected.POST("/update_receipt_received/:id", recordHandler.UpdateReceiptReceived)
	protected.POST("/update_receipt_verified/:id", recordHandler.UpdateReceiptVerified)
	protected.POST("/approve/:id", recordHandler.Approve)

	exportHandler := handler.NewExportHandler(engine)
	protected.GET("/export", exportHandler.ExportXLSX)
	protected.GET("/export/csv", exportHandler.ExportCSV)

	return r
}
