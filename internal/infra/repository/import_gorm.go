package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/usecase/importer"
)

const importBatchSize = 200

type ImportGormStore struct {
	db *gorm.DB
}

func NewImportGormStore(db *gorm.DB) *ImportGormStore {
	return &ImportGormStore{db: db}
}

func (s *ImportGormStore) InsertClients(ctx context.Context, rows []models.Client) error {
	return s.db.WithContext(ctx).CreateInBatches(rows, importBatchSize).Error
}

func (s *ImportGormStore) InsertServices(ctx context.Context, rows []models.Service) error {
	return s.db.WithContext(ctx).CreateInBatches(rows, importBatchSize).Error
}

func (s *ImportGormStore) InsertProducts(ctx context.Context, rows []models.Product) error {
	return s.db.WithContext(ctx).CreateInBatches(rows, importBatchSize).Error
}

var _ importer.BatchStore = (*ImportGormStore)(nil)
