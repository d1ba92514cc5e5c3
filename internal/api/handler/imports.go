package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/overtime-counters-api/internal/domain"
	"github.com/vfg2006/overtime-counters-api/internal/usecases/ingesting"
	"github.com/vfg2006/overtime-counters-api/pkg/apiErrors"
	"github.com/vfg2006/overtime-counters-api/pkg/log"
)

const (
	uploadFileField = "file"
	multipartMemory = 8 << 20
)

// upload é a planilha recebida com as decisões do usuário
type upload struct {
	fileName  string
	content   []byte
	overrides ingesting.Overrides
}

// readUpload lê o formulário multipart respeitando o limite de tamanho configurado
func readUpload(w http.ResponseWriter, r *http.Request, maxBytes int64) (*upload, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large") {
			apiErrors.WriteError(w, apiErrors.ErrFileTooLarge, "Arquivo acima do tamanho máximo permitido", map[string]int64{"max_bytes": maxBytes})
			return nil, false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formulário multipart inválido", err.Error())
		return nil, false
	}

	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFileField)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Campo 'file' é obrigatório", nil)
		return nil, false
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao ler o arquivo enviado", err.Error())
		return nil, false
	}

	overrides, err := parseOverrides(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Campo 'periods' deve ser um JSON {aba: {period_number, year}}", err.Error())
		return nil, false
	}

	return &upload{fileName: header.Filename, content: content, overrides: overrides}, true
}

// parseOverrides lê o JSON de períodos por aba e a lista de abas excluídas (repetida ou separada por vírgula)
func parseOverrides(r *http.Request) (ingesting.Overrides, error) {
	overrides := ingesting.Overrides{}

	if raw := strings.TrimSpace(r.FormValue("periods")); raw != "" {
		periods := map[string]domain.DetectedPeriod{}
		if err := json.UnmarshalFromString(raw, &periods); err != nil {
			return overrides, err
		}
		overrides.Periods = periods
	}

	for _, value := range r.MultipartForm.Value["exclude"] {
		for _, name := range strings.Split(value, ",") {
			if name = strings.TrimSpace(name); name != "" {
				overrides.ExcludedSheets = append(overrides.ExcludedSheets, name)
			}
		}
	}

	return overrides, nil
}

// PreviewImport analisa a planilha e devolve o resultado por aba sem gravar nada
func PreviewImport(service ingesting.Ingestor, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		up, ok := readUpload(w, r, maxBytes)
		if !ok {
			return
		}

		result := service.Ingest(r.Context(), up.content, up.overrides)

		logger.WithFields(log.Fields{
			"file_name":     up.fileName,
			"sheets":        len(result.Sheets),
			"global_errors": len(result.GlobalErrors),
		}).Info("imports: pré-visualização gerada")

		writeJSON(w, r, http.StatusOK, result)
	})
}

// ImportWorkbook grava as abas habilitadas da planilha
func ImportWorkbook(service ingesting.Ingestor, maxBytes int64) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		up, ok := readUpload(w, r, maxBytes)
		if !ok {
			return
		}

		report, err := service.Import(r.Context(), up.fileName, up.content, up.overrides)
		if err != nil {
			logger.WithError(err).WithField("file_name", up.fileName).Warn("imports: importação recusada")
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, report)
	})
}

// ListImports retorna o histórico das importações mais recentes
func ListImports(service ingesting.Ingestor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro 'limit' deve ser um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		entries, err := service.ListImports(r.Context(), limit)
		if err != nil {
			writeUsecaseError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, entries)
	})
}
