package handler

import (
	"net/http"

	"github.com/vfg2006/backoffice-api/internal/api/handler/router"
	"github.com/vfg2006/backoffice-api/internal/usecases/authenticating"
	"github.com/vfg2006/backoffice-api/internal/usecases/dashboarding"
	"github.com/vfg2006/backoffice-api/internal/usecases/goalsetting"
	"github.com/vfg2006/backoffice-api/pkg/middleware"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/logout",
			Method:      http.MethodPost,
			Handler:     Logout(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Dashboard(service dashboarding.Dashboarder) []router.Route {
	allRoles := middlewares{middleware.AllRoles()}

	return []router.Route{
		{Path: "/v1/dashboard", Method: http.MethodGet, Handler: GetDashboard(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/products", Method: http.MethodGet, Handler: GetProductProfitability(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/pending-payments", Method: http.MethodGet, Handler: GetPendingPayments(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/payment-methods", Method: http.MethodGet, Handler: GetPaymentMethods(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/frequent-customers", Method: http.MethodGet, Handler: GetFrequentCustomers(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/quoted-demand", Method: http.MethodGet, Handler: GetQuotedDemand(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/date-range", Method: http.MethodGet, Handler: GetDateRange(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/date-range", Method: http.MethodPut, Handler: PutDateRange(service), Middlewares: allRoles},
		{Path: "/v1/dashboard/date-range", Method: http.MethodDelete, Handler: DeleteDateRange(service), Middlewares: allRoles},
	}
}

func SalesGoal(service goalsetting.GoalSetter) []router.Route {
	allRoles := middlewares{middleware.AllRoles()}

	return []router.Route{
		{Path: "/v1/sales-goal", Method: http.MethodGet, Handler: GetSalesGoal(service), Middlewares: allRoles},
		{Path: "/v1/sales-goal", Method: http.MethodPut, Handler: PutSalesGoal(service), Middlewares: allRoles},
		{Path: "/v1/sales-goal", Method: http.MethodDelete, Handler: DeleteSalesGoal(service), Middlewares: allRoles},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}
