package handler

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/analyzing"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
	"github.com/vfg2006/overtime-counters-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("erro ao codificar resposta")
	}
}

// writeUsecaseError converte os erros tipados dos casos de uso em respostas da API
func writeUsecaseError(w http.ResponseWriter, err error) {
	var importErr *ingesting.ImportError
	if errors.As(err, &importErr) {
		apiErrors.WriteError(w, importErr.Code, importErr.Err.Error(), importErr.Details)
		return
	}

	var analyticsErr *analyzing.AnalyticsError
	if errors.As(err, &analyticsErr) {
		apiErrors.WriteError(w, analyticsErr.Code, analyticsErr.Err.Error(), analyticsErr.Details)
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}
