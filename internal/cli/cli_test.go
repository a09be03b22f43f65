package cli

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/bojo24/contentforge/internal/model"
	"github.com/bojo24/contentforge/internal/store"
)

func TestParseContentTypes(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    []model.ContentType
		wantErr bool
	}{
		{
			name:  "empty defaults to intro",
			input: nil,
			want:  []model.ContentType{model.ContentTypeIntro},
		},
		{
			name:  "all valid types",
			input: []string{"intro", "analysis", "guide", "tips"},
			want: []model.ContentType{
				model.ContentTypeIntro, model.ContentTypeAnalysis,
				model.ContentTypeGuide, model.ContentTypeTips,
			},
		},
		{
			name:    "unknown type rejected",
			input:   []string{"intro", "banner"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseContentTypes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseContentTypes(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d types, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("type[%d] = %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSeedRecordFromFile(t *testing.T) {
	rec := model.BenefitRecord{ID: "B100", Name: "청년 교통비 지원"}
	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	mem := store.NewMemory()
	if err := seedRecordFromFile(mem, path); err != nil {
		t.Fatalf("seedRecordFromFile: %v", err)
	}
	loaded, err := mem.Record(context.Background(), "B100")
	if err != nil {
		t.Fatalf("seeded record not readable: %v", err)
	}
	if loaded.Name != rec.Name {
		t.Errorf("Name = %q, want %q", loaded.Name, rec.Name)
	}
}

func TestSeedRecordFromFile_RejectsMissingID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "record.json")
	if err := os.WriteFile(path, []byte(`{"record_name":"이름만 있음"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := seedRecordFromFile(store.NewMemory(), path); err == nil {
		t.Error("record without an id must be rejected")
	}
}

func TestBuildStore_MemoryWithoutDatabaseURL(t *testing.T) {
	cfg := model.DefaultConfig()
	st, err := buildStore(context.Background(), cfg)
	if err != nil {
		t.Fatalf("buildStore: %v", err)
	}
	defer st.Close()
	if _, ok := st.(*store.Memory); !ok {
		t.Errorf("expected in-memory store, got %T", st)
	}
}
