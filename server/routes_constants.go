package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLogin      = "/login"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"

	// UI Routes
	RouteIndex = "/"

	// API Routes
	RouteAPIDashboard      = "/api/dashboard"
	RouteAPIItems          = "/api/items"
	RouteAPIItem           = "/api/items/{id}"
	RouteAPISales          = "/api/sales"
	RouteAPISalePreview    = "/api/sales/preview"
	RouteAPIExpenses       = "/api/expenses"
	RouteAPIReportsSummary = "/api/reports/summary"
	RouteAPIReportsExport  = "/api/reports/export"

	// Operational Routes
	RouteMetrics = "/metrics"
)
