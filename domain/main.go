package domain

import (
	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/domain/diagnostics"
	"github.com/akeren/friendlyfonts/domain/fonts"
	"github.com/akeren/friendlyfonts/domain/monitoring"
	"github.com/akeren/friendlyfonts/domain/pages"
	"github.com/akeren/friendlyfonts/domain/waitlist"
	"github.com/akeren/friendlyfonts/web"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	rs := appConfig.RouterService
	sheets := appConfig.Sheets
	production := appConfig.Config.Production

	rs.MountController(monitoring.NewMonitoringControllerFactory(appConfig).CreateController())
	rs.MountController(pages.NewPageController(appConfig.Logger, pages.Assets{
		Templates: web.Templates(),
		Static:    web.Static(),
	}))
	rs.MountController(waitlist.NewWaitlistControllerFactory(appConfig).CreateController())
	rs.MountController(fonts.NewFontController(appConfig.Logger, production))
	rs.MountController(diagnostics.NewDiagnosticsController(diagnostics.Dependencies{
		Logger:      appConfig.Logger,
		Sheets:      sheets.Client,
		SheetsErr:   sheets.ValidationErr,
		Credentials: sheets.Credentials,
		Target:      sheets.Target,
		Production:  production,
	}))
}
