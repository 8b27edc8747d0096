package loxtest

import (
	"path/filepath"
	"testing"
)

func TestGoldenPrograms(t *testing.T) {
	files, err := filepath.Glob("testdata/*.lox")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no golden fixtures found under testdata/")
	}

	for _, f := range files {
		f := f
		t.Run(filepath.Base(f), func(t *testing.T) {
			RunGolden(t, f)
		})
	}
}
