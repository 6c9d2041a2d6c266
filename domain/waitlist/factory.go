package waitlist

import (
	"github.com/akeren/friendlyfonts/config"
	"github.com/akeren/friendlyfonts/config/router"
)

type WaitlistControllerFactory interface {
	CreateController() *router.RESTController
}

type DefaultWaitlistControllerFactory struct {
	appConfig *config.ApplicationConfig
}

func NewWaitlistControllerFactory(appConfig *config.ApplicationConfig) WaitlistControllerFactory {
	return &DefaultWaitlistControllerFactory{appConfig: appConfig}
}

func (f *DefaultWaitlistControllerFactory) CreateController() *router.RESTController {
	sheets := f.appConfig.Sheets

	return NewWaitlistController(Dependencies{
		Logger:     f.appConfig.Logger,
		Sheets:     sheets.Client,
		SheetsErr:  sheets.ValidationErr,
		Production: f.appConfig.Config.Production,
	})
}
