package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/backoffice-api/internal/domain"
	"github.com/vfg2006/backoffice-api/internal/usecases/dashboarding"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
	"github.com/vfg2006/backoffice-api/pkg/log"
	"github.com/vfg2006/backoffice-api/pkg/utils"
)

// dateRangeFromQuery lê os parâmetros from e to (yyyy-mm-dd)
func dateRangeFromQuery(w http.ResponseWriter, r *http.Request) (*domain.DateRange, bool) {
	query := r.URL.Query()
	dateRange, err := utils.ParseDateRange(query.Get("from"), query.Get("to"))
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, false
	}
	return dateRange, true
}

func GetDashboard(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		dateRange, ok := dateRangeFromQuery(w, r)
		if !ok {
			return
		}

		dashboard, err := service.GetDashboard(r.Context(), claims.SessionID(), dateRange)
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao montar painel")
			return
		}

		if len(dashboard.UnavailableCollections) > 0 {
			log.ForContext(r.Context()).WithFields(log.Fields{
				"session":     claims.SessionID(),
				"unavailable": dashboard.UnavailableCollections,
			}).Warn("dashboard: painel montado com coleções indisponíveis")
		}

		writeJSON(w, r, http.StatusOK, dashboard)
	}
}

func GetProductProfitability(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.GetProductProfitability(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao calcular rentabilidade")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetPendingPayments(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		dateRange, ok := dateRangeFromQuery(w, r)
		if !ok {
			return
		}

		result, err := service.GetPendingPayments(r.Context(), claims.SessionID(), dateRange)
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao buscar pagamentos pendentes")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetPaymentMethods(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		dateRange, ok := dateRangeFromQuery(w, r)
		if !ok {
			return
		}

		result, err := service.GetPaymentMethodBreakdown(r.Context(), claims.SessionID(), dateRange)
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao agrupar formas de pagamento")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

// GetFrequentCustomers aceita ?threshold=N; sem parâmetro usa o limite configurado
func GetFrequentCustomers(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		dateRange, ok := dateRangeFromQuery(w, r)
		if !ok {
			return
		}

		threshold := -1
		if raw := r.URL.Query().Get("threshold"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "threshold deve ser um inteiro não negativo", nil)
				return
			}
			threshold = parsed
		}

		result, err := service.GetFrequentCustomers(r.Context(), claims.SessionID(), dateRange, threshold)
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao buscar clientes frequentes")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}

func GetQuotedDemand(service dashboarding.Dashboarder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := service.GetQuotedProductDemand(r.Context())
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao calcular demanda orçada")
			return
		}
		writeJSON(w, r, http.StatusOK, result)
	}
}
