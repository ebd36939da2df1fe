package content

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestMapLoad(t *testing.T) {
	src := NewMap(map[string]string{"greetings/hello.txt": "Hello!"})

	got, err := src.Load("greetings/hello.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "Hello!" {
		t.Errorf("Load = %q, want %q", got, "Hello!")
	}

	if _, err := src.Load("missing.txt"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: got %v, want ErrNotExist", err)
	}
}

func TestMapList(t *testing.T) {
	src := NewMap(map[string]string{
		"lib/b.txt":        "B",
		"lib/a.txt":        "A",
		"lib/nested/c.txt": "C",
		"other/d.txt":      "D",
	})

	ids, err := src.List("lib")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"lib/a.txt", "lib/b.txt"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}

	if _, err := src.List("nowhere"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing dir: got %v, want ErrNotExist", err)
	}
}

func TestDir(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "lib"), 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range map[string]string{"lib/a.txt": "alpha", "lib/b.txt": "beta"} {
		if err := os.WriteFile(filepath.Join(root, filepath.FromSlash(name)), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	src := NewDir(root)

	got, err := src.Load("lib/a.txt")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "alpha" {
		t.Errorf("Load = %q, want %q", got, "alpha")
	}

	ids, err := src.List("lib")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"lib/a.txt", "lib/b.txt"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("List = %v, want %v", ids, want)
	}
}
