package planet

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"accrete-server/internal/accrete"
	"accrete-server/internal/shared/database"

	"github.com/google/uuid"
)

type fakeStore struct {
	saved []BatchInsertRequest
	err   error
}

func (f *fakeStore) CreateBodiesBatch(_ context.Context, bodies []BatchInsertRequest, _ *database.Tx) ([]Body, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = append(f.saved, bodies...)
	out := make([]Body, len(bodies))
	for i, b := range bodies {
		out[i] = Body{ID: i + 1, SystemID: b.SystemID, ParentIndex: b.ParentIndex, BodyIndex: b.BodyIndex, Name: b.Name, Type: b.Type, Body: b.Body}
	}
	return out, nil
}

func (f *fakeStore) GetBodiesBySystemID(_ context.Context, systemID uuid.UUID) ([]Body, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []Body
	for _, b := range f.saved {
		if b.SystemID == systemID {
			out = append(out, Body{SystemID: b.SystemID, ParentIndex: b.ParentIndex, BodyIndex: b.BodyIndex, Name: b.Name, Body: b.Body})
		}
	}
	return out, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestService_SaveAndGetTree(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store, testLogger())
	id := uuid.New()

	sys, err := accrete.Generate(1, accrete.Options{IncludeMoons: true})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	n, err := svc.SaveBodies(context.Background(), id, "Altair", sys.Bodies, nil)
	if err != nil {
		t.Fatalf("SaveBodies() error = %v", err)
	}
	want := len(sys.Bodies)
	for _, b := range sys.Bodies {
		want += len(b.Moons)
	}
	if n != want {
		t.Errorf("saved %d rows, want %d", n, want)
	}

	tree, err := svc.GetTree(context.Background(), id)
	if err != nil {
		t.Fatalf("GetTree() error = %v", err)
	}
	if len(tree) != len(sys.Bodies) {
		t.Fatalf("tree has %d planets, want %d", len(tree), len(sys.Bodies))
	}
	for i := range tree {
		if tree[i].A != sys.Bodies[i].A || len(tree[i].Moons) != len(sys.Bodies[i].Moons) {
			t.Errorf("planet %d differs after storage", i)
		}
	}

	other, err := svc.GetTree(context.Background(), uuid.New())
	if err != nil || len(other) != 0 {
		t.Errorf("unknown system: %v, %v", other, err)
	}
}

func TestService_SaveError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection reset")}
	svc := NewService(store, testLogger())

	_, err := svc.SaveBodies(context.Background(), uuid.New(), "Vega", []accrete.Body{{A: 1, Mass: 1e-6}}, nil)
	if !errors.Is(err, store.err) {
		t.Errorf("SaveBodies() error = %v, want wrapped store error", err)
	}
}
