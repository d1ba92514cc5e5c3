package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/analyzing"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
	"github.com/vfg2006/overtime-counters-api/pkg/log"
)

// parseAnalyticsQuery lê ?periods=1,2&vehicle=BUS&mode=avg&monthly=true
func parseAnalyticsQuery(r *http.Request) (domain.AnalyticsQuery, string) {
	values := r.URL.Query()
	query := domain.AnalyticsQuery{}

	if raw := values.Get("periods"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseInt(part, 10, 64)
			if err != nil || id <= 0 {
				return query, "Parâmetro 'periods' deve ser uma lista de ids separados por vírgula"
			}
			query.PeriodIDs = append(query.PeriodIDs, id)
		}
	}

	if raw := values.Get("vehicle"); raw != "" && !strings.EqualFold(raw, "all") {
		vehicle, ok := domain.ParseVehicleType(raw)
		if !ok {
			return query, "Parâmetro 'vehicle' deve ser BUS, VAN ou all"
		}
		query.VehicleType = &vehicle
	}

	mode, ok := domain.ParseAggregationMode(strings.ToLower(values.Get("mode")))
	if !ok {
		return query, "Parâmetro 'mode' deve ser sum ou avg"
	}
	query.Mode = mode

	if raw := values.Get("monthly"); raw != "" {
		monthly, err := strconv.ParseBool(raw)
		if err != nil {
			return query, "Parâmetro 'monthly' deve ser true ou false"
		}
		query.IncludeMonthly = monthly
	}

	return query, ""
}

// GetAnalytics calcula os indicadores para os períodos e o veículo selecionados
func GetAnalytics(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		query, problem := parseAnalyticsQuery(r)
		if problem != "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, problem, nil)
			return
		}

		result, err := service.Analyze(r.Context(), query)
		if err != nil {
			logger.WithError(err).Error("analytics: erro ao calcular indicadores")
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

func ListPeriods(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.ListPeriods(r.Context())
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, periods)
	})
}

func ListDrivers(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		drivers, err := service.ListDrivers(r.Context())
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, drivers)
	})
}
