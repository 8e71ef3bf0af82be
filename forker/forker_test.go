package forker

import (
	"os"
	"testing"
)

func TestChildIndexAbsentByDefault(t *testing.T) {
	os.Unsetenv(ChildEnv)
	if idx := ChildIndex(); idx != -1 {
		t.Fatalf("ChildIndex() = %d, want -1 when unset", idx)
	}
}

func TestChildIndexParsesEnv(t *testing.T) {
	os.Setenv(ChildEnv, "3")
	defer os.Unsetenv(ChildEnv)

	if idx := ChildIndex(); idx != 3 {
		t.Fatalf("ChildIndex() = %d, want 3", idx)
	}
}

func TestChildIndexRejectsGarbage(t *testing.T) {
	os.Setenv(ChildEnv, "not-a-number")
	defer os.Unsetenv(ChildEnv)

	if idx := ChildIndex(); idx != -1 {
		t.Fatalf("ChildIndex() = %d, want -1 for non-numeric value", idx)
	}
}
