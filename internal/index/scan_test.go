package index

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeCorpusFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestIsRecordFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"口.json", true},
		{"一.json", true},
		{"default.json", false},
		{"口.txt", false},
		{"readme.md", false},
		{".json", false}, // private-use placeholder
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRecordFile(tt.name); got != tt.want {
			t.Errorf("IsRecordFile(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeCorpusFile(t, dir, "口.json", `{"id":"口","jishoData":{"jlptLevel":"N5","strokeCount":3}}`)
	writeCorpusFile(t, dir, "一.json", `{"jishoData":{"jlptLevel":"N5","strokeCount":1}}`)
	writeCorpusFile(t, dir, "壊.json", `{broken`)
	writeCorpusFile(t, dir, "default.json", `{}`)
	writeCorpusFile(t, dir, "notes.txt", "not a record")

	res, err := NewScanner(dir, 2).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if len(res.Skipped) != 1 || res.Skipped[0].Name != "壊.json" {
		t.Errorf("skipped = %+v, want the malformed file only", res.Skipped)
	}

	ids := map[string]bool{}
	for _, rec := range res.Records {
		ids[rec.ID] = true
	}
	// 一.json has no id field; the filename fills it in.
	if !ids["口"] || !ids["一"] {
		t.Errorf("record ids = %v", ids)
	}
}

func TestScan_MissingDir(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "nope"), 10).Scan(context.Background())
	if err == nil {
		t.Fatal("expected error for missing corpus directory")
	}
}

func TestScan_EmptyDir(t *testing.T) {
	res, err := NewScanner(t.TempDir(), 10).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Records) != 0 || len(res.Skipped) != 0 {
		t.Errorf("empty dir produced %+v", res)
	}
}

func TestScan_BatchesSmallerThanCorpus(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"一", "二", "三", "四", "五"} {
		writeCorpusFile(t, dir, name+".json", `{"jishoData":{"jlptLevel":"N5"}}`)
	}

	res, err := NewScanner(dir, 2).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(res.Records) != 5 {
		t.Errorf("got %d records across batches, want 5", len(res.Records))
	}
}
