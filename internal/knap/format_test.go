package knap

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoad_RoundTrip(t *testing.T) {
	inst := testInstance(t)
	inst.Name = "roundtrip"
	optimal := 30
	inst.Optimal = &optimal

	path := filepath.Join(t.TempDir(), "roundtrip.txt")
	if err := Save(inst, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "roundtrip" {
		t.Errorf("Expected name roundtrip, got %s", loaded.Name)
	}
	if loaded.N() != inst.N() {
		t.Fatalf("Expected %d items, got %d", inst.N(), loaded.N())
	}
	if loaded.Capacity != inst.Capacity {
		t.Errorf("Expected capacity %d, got %d", inst.Capacity, loaded.Capacity)
	}
	for i := 0; i < inst.N(); i++ {
		if loaded.Weights[i] != inst.Weights[i] || loaded.Values[i] != inst.Values[i] {
			t.Errorf("Item %d mismatch: got (%d,%d), want (%d,%d)",
				i, loaded.Values[i], loaded.Weights[i], inst.Values[i], inst.Weights[i])
		}
	}
	if loaded.Optimal == nil || *loaded.Optimal != 30 {
		t.Errorf("Expected optimal 30, got %v", loaded.Optimal)
	}
}

func TestLoad_WithoutHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.txt")
	content := "3 10\n10 5\n7 3\n8 4\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	inst, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if inst.N() != 3 || inst.Capacity != 10 {
		t.Errorf("Expected n=3 capacity=10, got n=%d capacity=%d", inst.N(), inst.Capacity)
	}
	if inst.Optimal != nil {
		t.Error("Expected no optimal without a comment header")
	}
	if inst.Name != "plain" {
		t.Errorf("Expected name plain, got %s", inst.Name)
	}
}

func TestLoad_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty file", ""},
		{"comment only", "# optimal: 5\n"},
		{"bad header", "abc\n"},
		{"missing items", "3 10\n10 5\n"},
		{"bad item line", "1 10\nnotanumber 5\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.txt")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Expected error for malformed file")
			}
		})
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()

	inst := testInstance(t)
	inst.Name = "good"
	if err := Save(inst, filepath.Join(dir, "good.txt")); err != nil {
		t.Fatal(err)
	}

	// Documentation and broken files are skipped, not fatal
	os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("notes"), 0644)
	os.WriteFile(filepath.Join(dir, "broken.txt"), []byte("not an instance"), 0644)
	os.WriteFile(filepath.Join(dir, "ignored.csv"), []byte("a,b\n"), 0644)

	instances, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir failed: %v", err)
	}

	if len(instances) != 1 {
		t.Fatalf("Expected 1 instance, got %d", len(instances))
	}
	if instances[0].Name != "good" {
		t.Errorf("Expected instance good, got %s", instances[0].Name)
	}
}
