package importer

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/BruksfildServices01/business-manager/internal/audit"
	"github.com/BruksfildServices01/business-manager/internal/models"
)

// ======================================================
// CONTRACTS
// ======================================================

type Kind string

const (
	KindClients  Kind = "clients"
	KindServices Kind = "services"
	KindProducts Kind = "products"
)

// BatchStore inserts N rows in batches, outside any booking transaction.
type BatchStore interface {
	InsertClients(ctx context.Context, rows []models.Client) error
	InsertServices(ctx context.Context, rows []models.Service) error
	InsertProducts(ctx context.Context, rows []models.Product) error
}

// Archive keeps the raw uploaded file for later inspection. Optional.
type Archive interface {
	Save(ctx context.Context, ownerID string, kind string, fileName string, raw []byte) (string, error)
}

// ======================================================
// INPUT / OUTPUT
// ======================================================

type Input struct {
	OwnerID  string
	Kind     Kind
	FileName string
	Raw      []byte

	Clients  []models.Client
	Services []models.Service
	Products []models.Product
}

type Result struct {
	Inserted   int
	Skipped    int
	ArchiveKey string
}

// ======================================================
// USE CASE
// ======================================================

type ImportBatch struct {
	store   BatchStore
	archive Archive
	audit   *audit.Dispatcher
}

func NewImportBatch(store BatchStore, archive Archive, audit *audit.Dispatcher) *ImportBatch {
	return &ImportBatch{
		store:   store,
		archive: archive,
		audit:   audit,
	}
}

// Execute stamps the owner on every row and batch-inserts them. Rows
// without a name are skipped, not failed: one bad line must not sink a
// whole import.
func (uc *ImportBatch) Execute(ctx context.Context, in Input) (Result, error) {
	if in.OwnerID == "" {
		return Result{}, fmt.Errorf("owner_id is required")
	}

	var res Result
	var err error

	switch in.Kind {
	case KindClients:
		rows := make([]models.Client, 0, len(in.Clients))
		for _, r := range in.Clients {
			if strings.TrimSpace(r.Name) == "" {
				res.Skipped++
				continue
			}
			r.ID = ""
			r.OwnerID = in.OwnerID
			r.TotalSpent = 0
			r.LastService = ""
			rows = append(rows, r)
		}
		if len(rows) > 0 {
			err = uc.store.InsertClients(ctx, rows)
		}
		res.Inserted = len(rows)

	case KindServices:
		rows := make([]models.Service, 0, len(in.Services))
		for _, r := range in.Services {
			if strings.TrimSpace(r.Name) == "" {
				res.Skipped++
				continue
			}
			r.ID = ""
			r.OwnerID = in.OwnerID
			r.Active = true
			rows = append(rows, r)
		}
		if len(rows) > 0 {
			err = uc.store.InsertServices(ctx, rows)
		}
		res.Inserted = len(rows)

	case KindProducts:
		rows := make([]models.Product, 0, len(in.Products))
		for _, r := range in.Products {
			if strings.TrimSpace(r.Name) == "" {
				res.Skipped++
				continue
			}
			r.ID = ""
			r.OwnerID = in.OwnerID
			r.Active = true
			rows = append(rows, r)
		}
		if len(rows) > 0 {
			err = uc.store.InsertProducts(ctx, rows)
		}
		res.Inserted = len(rows)

	default:
		return Result{}, fmt.Errorf("unknown import kind: %q", in.Kind)
	}

	if err != nil {
		return Result{}, err
	}

	if uc.archive != nil && len(in.Raw) > 0 {
		key, archiveErr := uc.archive.Save(ctx, in.OwnerID, string(in.Kind), in.FileName, in.Raw)
		if archiveErr != nil {
			log.Printf("import archive failed (%s/%s): %v", in.OwnerID, in.Kind, archiveErr)
		} else {
			res.ArchiveKey = key
		}
	}

	if uc.audit != nil {
		uc.audit.Dispatch(audit.Event{
			OwnerID: in.OwnerID,
			Action:  "import_completed",
			Entity:  string(in.Kind),
			Metadata: map[string]any{
				"inserted": res.Inserted,
				"skipped":  res.Skipped,
				"file":     in.FileName,
			},
		})
	}

	return res, nil
}
