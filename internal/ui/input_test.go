package ui

import "testing"

func TestCommandModeToggleAndSubmit(t *testing.T) {
	h := NewHarness(newTestModel(newFakeReader(), Options{}, "/home/u"))

	h.Press(":")
	if h.Model().Mode() != ModeCommand {
		t.Fatalf("expected command mode")
	}
	if p := h.Model().Payload(); !p.CommandBox.Visible || p.CommandBox.Content != "" {
		t.Fatalf("expected empty visible command box, got %#v", p.CommandBox)
	}

	h.Type("qj1")
	if h.Quit() {
		t.Fatalf("q must not quit in command mode")
	}
	if got := h.Model().CommandText(); got != "qj1" {
		t.Fatalf("expected typed text, got %q", got)
	}
	if focusedTab(t, h).Current.Cursor != 0 || h.Model().Tabs().FocusedID() != "1" {
		t.Fatalf("expected no navigation while typing")
	}

	h.Press("backspace")
	if got := h.Model().CommandText(); got != "qj" {
		t.Fatalf("expected backspace to edit the box, got %q", got)
	}

	h.Press("enter")
	if h.Model().Mode() != ModeNormal {
		t.Fatalf("expected enter to leave command mode")
	}
	p := h.Model().Payload()
	if p.CommandBox.Visible || p.CommandBox.Content != "" {
		t.Fatalf("expected hidden, cleared command box, got %#v", p.CommandBox)
	}
	if focusedTab(t, h).Path() != "/home/u" {
		t.Fatalf("submitting must not navigate")
	}
}

func TestCommandModeEscapeCancels(t *testing.T) {
	h := NewHarness(newTestModel(newFakeReader(), Options{}, "/home/u"))
	h.Press(":")
	h.Type("abc")
	h.Press("esc")
	if h.Model().Mode() != ModeNormal || h.Model().CommandText() != "" {
		t.Fatalf("expected escape to cancel and clear")
	}
	h.Press("j")
	if focusedTab(t, h).Current.Cursor != 1 {
		t.Fatalf("expected normal keys to work again")
	}
}

func TestCommandModeShrinksListRows(t *testing.T) {
	m := newTestModel(newFakeReader(), Options{Height: 20}, "/home/u")
	h := NewHarness(m)
	normal := m.listRows()
	h.Press(":")
	if got := m.listRows(); got != normal-3 {
		t.Fatalf("expected command box to take 3 rows, got %d vs %d", got, normal)
	}
}
