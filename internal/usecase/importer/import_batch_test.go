package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/BruksfildServices01/business-manager/internal/models"
)

// ======================================================
// FAKES
// ======================================================

type fakeBatchStore struct {
	clients  []models.Client
	services []models.Service
	products []models.Product
	err      error
}

func (s *fakeBatchStore) InsertClients(_ context.Context, rows []models.Client) error {
	if s.err != nil {
		return s.err
	}
	s.clients = append(s.clients, rows...)
	return nil
}

func (s *fakeBatchStore) InsertServices(_ context.Context, rows []models.Service) error {
	if s.err != nil {
		return s.err
	}
	s.services = append(s.services, rows...)
	return nil
}

func (s *fakeBatchStore) InsertProducts(_ context.Context, rows []models.Product) error {
	if s.err != nil {
		return s.err
	}
	s.products = append(s.products, rows...)
	return nil
}

type fakeArchive struct {
	saved int
	err   error
}

func (a *fakeArchive) Save(_ context.Context, ownerID, kind, fileName string, _ []byte) (string, error) {
	if a.err != nil {
		return "", a.err
	}
	a.saved++
	return "imports/" + ownerID + "/" + kind + "/" + fileName, nil
}

// ======================================================
// TESTS
// ======================================================

func TestExecute_StampsOwnerAndClearsLedger(t *testing.T) {
	store := &fakeBatchStore{}
	uc := NewImportBatch(store, nil, nil)

	res, err := uc.Execute(context.Background(), Input{
		OwnerID: "owner-1",
		Kind:    KindClients,
		Clients: []models.Client{
			{ID: "evil-id", OwnerID: "owner-2", Name: "Maria", TotalSpent: 999, LastService: "x"},
			{Name: "Pedro"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Inserted != 2 || res.Skipped != 0 {
		t.Fatalf("want 2 inserted / 0 skipped, got %+v", res)
	}

	for _, c := range store.clients {
		if c.OwnerID != "owner-1" {
			t.Fatalf("row not stamped with importing owner: %+v", c)
		}
		if c.ID != "" {
			t.Fatalf("imported row must not keep its incoming id: %+v", c)
		}
		if c.TotalSpent != 0 || c.LastService != "" {
			t.Fatalf("imported row must start with a clean ledger: %+v", c)
		}
	}
}

func TestExecute_SkipsNamelessRows(t *testing.T) {
	store := &fakeBatchStore{}
	uc := NewImportBatch(store, nil, nil)

	res, err := uc.Execute(context.Background(), Input{
		OwnerID: "owner-1",
		Kind:    KindServices,
		Services: []models.Service{
			{Name: "Corte"},
			{Name: "   "},
			{Name: ""},
			{Name: "Barba"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Inserted != 2 || res.Skipped != 2 {
		t.Fatalf("want 2 inserted / 2 skipped, got %+v", res)
	}
	if len(store.services) != 2 {
		t.Fatalf("expected 2 stored rows, got %d", len(store.services))
	}
}

func TestExecute_UnknownKind(t *testing.T) {
	uc := NewImportBatch(&fakeBatchStore{}, nil, nil)

	_, err := uc.Execute(context.Background(), Input{
		OwnerID: "owner-1",
		Kind:    Kind("invoices"),
	})
	if err == nil {
		t.Fatal("expected an error for an unknown kind")
	}
}

func TestExecute_RequiresOwner(t *testing.T) {
	uc := NewImportBatch(&fakeBatchStore{}, nil, nil)

	if _, err := uc.Execute(context.Background(), Input{Kind: KindClients}); err == nil {
		t.Fatal("expected an error when owner_id is missing")
	}
}

func TestExecute_StoreErrorFailsImport(t *testing.T) {
	store := &fakeBatchStore{err: errors.New("connection reset")}
	uc := NewImportBatch(store, nil, nil)

	_, err := uc.Execute(context.Background(), Input{
		OwnerID:  "owner-1",
		Kind:     KindProducts,
		Products: []models.Product{{Name: "Pomada"}},
	})
	if err == nil {
		t.Fatal("expected the store error to surface")
	}
}

func TestExecute_ArchiveIsBestEffort(t *testing.T) {
	store := &fakeBatchStore{}
	archive := &fakeArchive{err: errors.New("bucket unreachable")}
	uc := NewImportBatch(store, archive, nil)

	res, err := uc.Execute(context.Background(), Input{
		OwnerID:  "owner-1",
		Kind:     KindClients,
		FileName: "clientes.csv",
		Raw:      []byte("name\nMaria\n"),
		Clients:  []models.Client{{Name: "Maria"}},
	})
	if err != nil {
		t.Fatalf("archive failure must not fail the import: %v", err)
	}
	if res.Inserted != 1 {
		t.Fatalf("want 1 inserted, got %+v", res)
	}
	if res.ArchiveKey != "" {
		t.Fatalf("failed archive must not report a key, got %q", res.ArchiveKey)
	}
}

func TestExecute_ArchiveKeyReturnedOnSuccess(t *testing.T) {
	store := &fakeBatchStore{}
	archive := &fakeArchive{}
	uc := NewImportBatch(store, archive, nil)

	res, err := uc.Execute(context.Background(), Input{
		OwnerID:  "owner-1",
		Kind:     KindClients,
		FileName: "clientes.csv",
		Raw:      []byte("name\nMaria\n"),
		Clients:  []models.Client{{Name: "Maria"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ArchiveKey == "" || archive.saved != 1 {
		t.Fatalf("expected the raw file to be archived, got %+v", res)
	}
}
