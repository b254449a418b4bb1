package router

import "net/http"

type WizardRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

type HistoryRouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler)
}

func New(
	wizardController WizardRouteRegistrar,
	historyController HistoryRouteRegistrar,
	authMiddleware func(http.Handler) http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	if wizardController != nil {
		wizardController.RegisterRoutes(mux, authMiddleware)
	}
	if historyController != nil {
		historyController.RegisterRoutes(mux, authMiddleware)
	}

	return mux
}
