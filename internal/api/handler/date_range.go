package handler

import (
	"net/http"

	"github.com/vfg2006/backoffice-api/internal/usecases/dashboarding"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
	"github.com/vfg2006/backoffice-api/pkg/utils"
)

type DateRangeRequest struct {
	From string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `json:"to" validate:"omitempty,datetime=2006-01-02"`
}

func GetDateRange(service dashboarding.DateRangeKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		dateRange, err := service.GetDateRange(r.Context(), claims.SessionID())
		if err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao ler período")
			return
		}
		if dateRange == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		writeJSON(w, r, http.StatusOK, dateRange)
	}
}

// PutDateRange salva o período da sessão. Períodos invertidos são recusados.
func PutDateRange(service dashboarding.DateRangeKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req DateRangeRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		dateRange, err := utils.ParseDateRange(req.From, req.To)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		if dateRange == nil {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe ao menos uma das datas", nil)
			return
		}
		if dateRange.IsInverted() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Data inicial posterior à data final", nil)
			return
		}

		if err := service.SetDateRange(r.Context(), claims.SessionID(), dateRange); err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao salvar período")
			return
		}

		writeJSON(w, r, http.StatusOK, dateRange)
	}
}

func DeleteDateRange(service dashboarding.DateRangeKeeper) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		if err := service.ClearDateRange(r.Context(), claims.SessionID()); err != nil {
			writeServiceError(w, r, err, "dashboard: erro ao limpar período")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
