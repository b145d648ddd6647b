package input

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeTemp(t, "eans.csv", "EAN,Name,EK\n0041333931,Stabilo Boss,1,0\n4006381333931,Textmarker,\n")

	rows, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].EAN != "0041333931" {
		t.Errorf("EAN = %q, leading zeros must survive", rows[0].EAN)
	}
	if !rows[0].HasCost || rows[0].Cost != 1.0 {
		t.Errorf("row 0 cost = %v (%v), want 1.0", rows[0].Cost, rows[0].HasCost)
	}
	if rows[1].HasCost {
		t.Errorf("row 1 should have no cost")
	}
}

func TestLoadMissingEANColumn(t *testing.T) {
	path := writeTemp(t, "bad.csv", "Artikel,Preis\nfoo,1\n")

	if _, err := Load(path, false); err == nil {
		t.Fatal("expected a validation error for the missing EAN column")
	}
}

func TestLoadWithCostRequiresColumns(t *testing.T) {
	path := writeTemp(t, "nocost.csv", "EAN,Name\n4006381333931,Stift\n")

	if _, err := Load(path, true); err == nil {
		t.Fatal("expected a validation error for the missing EK column")
	}
}

func TestLoadWithCostRequiresValues(t *testing.T) {
	path := writeTemp(t, "gap.csv", "EAN,Name,EK\n4006381333931,Stift,\n")

	if _, err := Load(path, true); err == nil {
		t.Fatal("expected a validation error for the missing EK value")
	}
}

func TestLoadRejectsNegativeCost(t *testing.T) {
	path := writeTemp(t, "neg.csv", "EAN,Name,EK\n4006381333931,Stift,-2\n")

	if _, err := Load(path, false); err == nil {
		t.Fatal("expected a validation error for a negative EK")
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := writeTemp(t, "blank.csv", "EAN\n4006381333931\n\n  \n")

	rows, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (blank rows skipped)", len(rows))
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeTemp(t, "eans.txt", "EAN\n123\n")

	if _, err := Load(path, false); err == nil {
		t.Fatal("expected an error for an unsupported file type")
	}
}

func TestLimit(t *testing.T) {
	path := writeTemp(t, "eans.csv", "EAN\n1\n2\n3\n")
	rows, err := Load(path, false)
	if err != nil {
		t.Fatal(err)
	}

	if got := Limit(rows, 2); len(got) != 2 {
		t.Errorf("Limit(2) kept %d rows", len(got))
	}
	if got := Limit(rows, 0); len(got) != 3 {
		t.Errorf("Limit(0) must keep all rows, kept %d", len(got))
	}
	if got := Limit(rows, 10); len(got) != 3 {
		t.Errorf("Limit beyond length must keep all rows, kept %d", len(got))
	}
}
