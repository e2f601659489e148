package panels

import (
	"fmt"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestLogPanelAppendTrims(t *testing.T) {
	test.NewApp()

	lp := NewLogPanel(3)
	for i := 0; i < 5; i++ {
		lp.Append(fmt.Sprintf("line %d", i))
	}

	got := lp.Lines()
	want := []string{"line 2", "line 3", "line 4"}
	if len(got) != len(want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("lines[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	lp.Clear()
	if n := len(lp.Lines()); n != 0 {
		t.Errorf("lines after Clear = %d", n)
	}
}
