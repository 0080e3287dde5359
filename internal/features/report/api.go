package report

import (
	"go-fleet/internal/config"
	"go-fleet/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
	Config           *config.Config
}

func NewReportApi(reportController *ReportController, config *config.Config) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
		Config:           config,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/reports", middleware.AuthMiddleware(api.Config.SkipAuth))

	group.Post("/generate", api.ReportController.Generate)
	group.Get("/", api.ReportController.List)
	group.Get("/:id/download", api.ReportController.Download)
	group.Delete("/:id", api.ReportController.Delete)
}
