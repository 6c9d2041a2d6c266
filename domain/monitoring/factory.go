package monitoring

import (
	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/config/router"
)

type MonitoringControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultMonitoringControllerFactory struct {
	appConfig *config.ApplicationConfig
}

func NewMonitoringControllerFactory(appConfig *config.ApplicationConfig) MonitoringControllerFactory {
	return &DefaultMonitoringControllerFactory{appConfig: appConfig}
}

func (f *DefaultMonitoringControllerFactory) CreateController() *router.RESTController {
	var cache Cache
	if f.appConfig.Cache != nil {
		cache = f.appConfig.Cache
	}

	var sheets Spreadsheet
	if f.appConfig.Sheets != nil {
		sheets = f.appConfig.Sheets
	}

	return NewMonitoringController(f.appConfig.Logger, cache, sheets, f.appConfig.StartedAt)
}
