package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/matzehuels/stackchart/pkg/data"
	"github.com/matzehuels/stackchart/pkg/errors"
	"github.com/matzehuels/stackchart/pkg/recipe"
)

func sample(title string, at time.Time) *Record {
	return &Record{
		Title:  title,
		Recipe: "column",
		Fields: recipe.Fields{X: "genre", Y: "sold"},
		Data: []data.Datum{
			{"genre": "Sports", "sold": 275.0},
			{"genre": "Strategy", "sold": 115.0},
		},
		Width:     640,
		Height:    480,
		CreatedAt: at,
	}
}

// backends returns every store that runs without external services, plus
// MongoDB when STACKCHART_TEST_MONGO_URI is set.
func backends(t *testing.T) map[string]Store {
	t.Helper()
	fs, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	out := map[string]Store{"memory": NewMemoryStore(), "file": fs}
	if uri := os.Getenv("STACKCHART_TEST_MONGO_URI"); uri != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		ms, err := NewMongoStore(ctx, MongoConfig{URI: uri, Collection: "charts_test_" + time.Now().Format("150405.000")})
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() {
			_ = ms.coll.Drop(context.Background())
			_ = ms.Close()
		})
		out["mongo"] = ms
	}
	return out
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			r := sample("sales", time.Time{})
			if err := s.Create(ctx, r); err != nil {
				t.Fatal(err)
			}
			if r.ID == "" || r.CreatedAt.IsZero() {
				t.Fatalf("generated fields unset: %+v", r)
			}

			got, err := s.Get(ctx, r.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Title != "sales" || got.Recipe != "column" || got.Fields.X != "genre" {
				t.Errorf("got %+v", got)
			}
			if len(got.Data) != 2 || got.Data[0]["genre"] != "Sports" {
				t.Errorf("rows = %v", got.Data)
			}
			if v, ok := data.ToFloat(got.Data[0]["sold"]); !ok || v != 275 {
				t.Errorf("sold = %v", got.Data[0]["sold"])
			}

			if err := s.Delete(ctx, r.ID); err != nil {
				t.Fatal(err)
			}
			if _, err := s.Get(ctx, r.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
				t.Errorf("Get after delete: %v", err)
			}
			if err := s.Delete(ctx, r.ID); !errors.Is(err, errors.ErrCodeChartNotFound) {
				t.Errorf("second Delete: %v", err)
			}
		})
	}
}

func TestStoreList(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for i, title := range []string{"old", "new", "mid"} {
				at := base.Add(time.Duration([]int{0, 2, 1}[i]) * time.Hour)
				if err := s.Create(ctx, sample(title, at)); err != nil {
					t.Fatal(err)
				}
			}

			all, err := s.List(ctx, 0)
			if err != nil {
				t.Fatal(err)
			}
			var titles []string
			for _, r := range all {
				titles = append(titles, r.Title)
			}
			if len(titles) != 3 || titles[0] != "new" || titles[1] != "mid" || titles[2] != "old" {
				t.Errorf("order = %v", titles)
			}

			two, err := s.List(ctx, 2)
			if err != nil {
				t.Fatal(err)
			}
			if len(two) != 2 {
				t.Errorf("limit 2 returned %d", len(two))
			}
		})
	}
}

func TestStoreBadID(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Get(ctx, "../etc/passwd"); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Get: %v", err)
			}
			if err := s.Delete(ctx, "nope"); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Delete: %v", err)
			}
			if err := s.Create(ctx, &Record{ID: "x y"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Create: %v", err)
			}
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	r := sample("a", time.Time{})
	if err := s.Create(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Title = "changed"
	got, _ := s.Get(ctx, r.ID)
	if got.Title != "a" {
		t.Errorf("store shares the caller's record: %q", got.Title)
	}
}

func TestFileStoreSkipsForeignFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(dir+"/broken.json", []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := s.Create(context.Background(), sample("ok", time.Time{})); err != nil {
		t.Fatal(err)
	}
	rs, err := s.List(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(rs) != 1 || rs[0].Title != "ok" {
		t.Errorf("List = %v", rs)
	}
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore accepted an empty directory")
	}
}

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Record)
		code   errors.Code
	}{
		{"valid", func(*Record) {}, ""},
		{"unknown recipe", func(r *Record) { r.Recipe = "sankey" }, errors.ErrCodeInvalidRecipe},
		{"missing field", func(r *Record) { r.Fields.Y = "revenue" }, errors.ErrCodeInvalidRecipe},
		{"zero size", func(r *Record) { r.Width = 0 }, errors.ErrCodeInvalidInput},
		{"bad theme", func(r *Record) { r.Theme = "neon" }, errors.ErrCodeInvalidTheme},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sample("x", time.Time{})
			tt.modify(r)
			err := r.Validate()
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("got %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestNewMongoStoreEmptyURI(t *testing.T) {
	if _, err := NewMongoStore(context.Background(), MongoConfig{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("got %v", err)
	}
}
