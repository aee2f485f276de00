package server

func (s *Server) initRoutes() {
	// LOGIN
	s.RegisterRouteFunc("GET "+RouteLogin, ChainMiddleware(s.LoginPageUIHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteFunc("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))

	// UI routes (require a session)
	s.RegisterRouteFunc("GET "+RouteIndex+"{$}", ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare(s.RequireSession())...))

	// JSON views (require a session)
	s.RegisterRouteFunc("GET "+RouteAPIDashboard, ChainMiddleware(s.DashboardHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPIItems, ChainMiddleware(s.ListItemsHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("POST "+RouteAPIItems, ChainMiddleware(s.CreateItemHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("PUT "+RouteAPIItem, ChainMiddleware(s.UpdateItemHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("DELETE "+RouteAPIItem, ChainMiddleware(s.DeleteItemHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPISales, ChainMiddleware(s.ListSalesHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("POST "+RouteAPISales, ChainMiddleware(s.RecordSaleHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPISalePreview, ChainMiddleware(s.PreviewSaleHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPIExpenses, ChainMiddleware(s.ListExpensesHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("POST "+RouteAPIExpenses, ChainMiddleware(s.AddExpenseHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPIReportsSummary, ChainMiddleware(s.ReportSummaryHandler(), s.APIMiddleware(s.RequireSession())...))
	s.RegisterRouteFunc("GET "+RouteAPIReportsExport, ChainMiddleware(s.ReportExportHandler(), s.APIMiddleware(s.RequireSession())...))

	if s.metrics != nil {
		s.RegisterRouteHandler("GET "+RouteMetrics, s.metrics.Handler())
	}

	// Anything else lands on the index or the login page
	s.RegisterRouteFunc("/", ChainMiddleware(s.CatchAllHandler(), s.HTMLMiddleWare()...))
}
