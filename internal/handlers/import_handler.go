package handlers

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/business-manager/internal/httperr"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/usecase/importer"
)

// ======================================================
// HANDLER
// ======================================================

type ImportHandler struct {
	importUC *importer.ImportBatch
}

func NewImportHandler(importUC *importer.ImportBatch) *ImportHandler {
	return &ImportHandler{importUC: importUC}
}

// Import accepts a CSV upload (multipart field "file") and batch-inserts
// the rows for the authenticated owner. The first line is a header.
//
// Expected columns:
//
//	clients:  name,phone,email,address,notes
//	services: name,price,duration_min,description
//	products: name,price,stock,description
func (h *ImportHandler) Import(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	kind := importer.Kind(c.Param("kind"))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Arquivo CSV obrigatório.")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}

	in := importer.Input{
		OwnerID:  ownerID,
		Kind:     kind,
		FileName: fileHeader.Filename,
		Raw:      raw,
	}

	records, err := readCSV(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_csv", "CSV inválido.")
		return
	}

	switch kind {
	case importer.KindClients:
		for _, rec := range records {
			in.Clients = append(in.Clients, models.Client{
				Name:    col(rec, 0),
				Phone:   col(rec, 1),
				Email:   col(rec, 2),
				Address: col(rec, 3),
				Notes:   col(rec, 4),
			})
		}
	case importer.KindServices:
		for _, rec := range records {
			in.Services = append(in.Services, models.Service{
				Name:        col(rec, 0),
				Price:       parseFloat(col(rec, 1)),
				DurationMin: parseInt(col(rec, 2)),
				Description: col(rec, 3),
			})
		}
	case importer.KindProducts:
		for _, rec := range records {
			in.Products = append(in.Products, models.Product{
				Name:        col(rec, 0),
				Price:       parseFloat(col(rec, 1)),
				Stock:       parseInt(col(rec, 2)),
				Description: col(rec, 3),
			})
		}
	default:
		httperr.BadRequest(c, "invalid_import_kind", "Tipo de importação desconhecido.")
		return
	}

	res, err := h.importUC.Execute(c.Request.Context(), in)
	if err != nil {
		httperr.Internal(c, "failed_to_import", "Erro ao importar.")
		return
	}

	c.JSON(200, gin.H{
		"inserted":    res.Inserted,
		"skipped":     res.Skipped,
		"archive_key": res.ArchiveKey,
	})
}

// ======================================================
// CSV HELPERS
// ======================================================

func readCSV(raw []byte) ([][]string, error) {
	r := csv.NewReader(strings.NewReader(string(raw)))
	r.FieldsPerRecord = -1 // linhas curtas são toleradas
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) > 0 {
		records = records[1:] // header
	}
	return records, nil
}

func col(rec []string, i int) string {
	if i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
