package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func mcKey(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testChoice() MultiChoice {
	return NewMultiChoice(
		"Which gas do plants absorb?",
		[]string{"A", "B", "C", "D"},
		[]string{"Oxygen", "Carbon dioxide", "Nitrogen", "Helium"},
		1,
		"Plants take in carbon dioxide for photosynthesis.",
	)
}

func TestMultiChoice_Navigation(t *testing.T) {
	m := testChoice()

	m, _ = m.Update(mcKey('j'))
	m, _ = m.Update(mcKey('j'))
	if m.Selected != 2 {
		t.Errorf("Selected = %d, want 2", m.Selected)
	}

	m, _ = m.Update(mcKey('k'))
	if m.Selected != 1 {
		t.Errorf("Selected = %d, want 1", m.Selected)
	}

	// Up at the top is a no-op.
	m.Selected = 0
	m, _ = m.Update(mcKey('k'))
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
}

func TestMultiChoice_EnterSubmits(t *testing.T) {
	m := testChoice()
	m, _ = m.Update(mcKey('j'))
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if !m.Submitted {
		t.Fatal("expected submission after enter")
	}
	if !m.IsCorrect() {
		t.Error("option B should be correct")
	}
	if m.ChosenLabel() != "B" {
		t.Errorf("ChosenLabel = %q, want B", m.ChosenLabel())
	}
}

func TestMultiChoice_LabelKeyPicksDirectly(t *testing.T) {
	m := testChoice()
	m, _ = m.Update(mcKey('c'))

	if !m.Submitted {
		t.Fatal("expected label key to submit")
	}
	if m.ChosenIndex != 2 {
		t.Errorf("ChosenIndex = %d, want 2", m.ChosenIndex)
	}
	if m.IsCorrect() {
		t.Error("option C is wrong")
	}
}

func TestMultiChoice_IgnoresInputAfterSubmit(t *testing.T) {
	m := testChoice()
	m, _ = m.Update(mcKey('a'))
	m, _ = m.Update(mcKey('d'))

	if m.ChosenIndex != 0 {
		t.Errorf("ChosenIndex = %d, want 0 (locked after submit)", m.ChosenIndex)
	}
}

func TestMultiChoice_ViewRevealsExplanation(t *testing.T) {
	m := testChoice()
	if strings.Contains(m.View(), "photosynthesis") {
		t.Error("explanation visible before submission")
	}

	m, _ = m.Update(mcKey('b'))
	if !strings.Contains(m.View(), "photosynthesis") {
		t.Error("explanation hidden after submission")
	}
}

func TestMultiChoice_ChosenLabelBeforeSubmit(t *testing.T) {
	m := testChoice()
	if got := m.ChosenLabel(); got != "" {
		t.Errorf("ChosenLabel = %q before submit, want empty", got)
	}
}
