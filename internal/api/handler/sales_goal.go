package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/vfg2006/backoffice-api/internal/usecases/goalsetting"
	"github.com/vfg2006/backoffice-api/pkg/apiErrors"
	"github.com/vfg2006/backoffice-api/pkg/log"
)

type SalesGoalRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

func GetSalesGoal(service goalsetting.GoalSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		goal, err := service.GetCurrentGoal(r.Context(), claims.SessionID(), time.Now())
		if err != nil {
			writeSalesGoalError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, goal)
	}
}

func PutSalesGoal(service goalsetting.GoalSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		var req SalesGoalRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		goal, err := service.SetManualGoal(r.Context(), claims.SessionID(), req.Amount, time.Now())
		if err != nil {
			writeSalesGoalError(w, r, err)
			return
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"session": claims.SessionID(),
			"amount":  goal.Amount,
		}).Info("sales-goal: meta manual definida")

		writeJSON(w, r, http.StatusOK, goal)
	}
}

// DeleteSalesGoal volta a meta para o cálculo automático
func DeleteSalesGoal(service goalsetting.GoalSetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := sessionFromRequest(w, r)
		if !ok {
			return
		}

		if err := service.ClearGoal(r.Context(), claims.SessionID()); err != nil {
			writeSalesGoalError(w, r, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func writeSalesGoalError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, goalsetting.ErrInvalidAmount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
	case errors.Is(err, goalsetting.ErrSessionRequired):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)
	default:
		writeServiceError(w, r, err, "sales-goal: erro ao processar meta de vendas")
	}
}
