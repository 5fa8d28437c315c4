package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorneau/fizzlab/internal/fizzbuzz"
)

// formKinds is the cycle order of the kind selector.
var formKinds = []fizzbuzz.Kind{
	fizzbuzz.KindDivisor,
	fizzbuzz.KindPrime,
	fizzbuzz.KindFibonacci,
	fizzbuzz.KindRange,
}

// FormModel is the centered add/edit overlay. Focus slot 0 is the kind
// selector; the text inputs follow in display order. Enter advances
// through the fields and submits from the last one; Esc cancels.
type FormModel struct {
	editID  string // empty when adding
	order   int    // preserved across an edit
	kindIdx int

	labels []string
	inputs []textinput.Model
	focus  int

	errText   string
	done      bool
	cancelled bool
	block     fizzbuzz.Block // valid once done
}

// newAddForm creates a form for a fresh divisor rule.
func newAddForm() (FormModel, tea.Cmd) {
	f := FormModel{}
	f.rebuildInputs("", "", "", "")
	cmd := f.setFocus(0)
	return f, cmd
}

// newEditForm creates a form seeded from an existing block.
func newEditForm(b fizzbuzz.Block) (FormModel, tea.Cmd) {
	f := FormModel{editID: b.ID, order: b.Order}
	for i, k := range formKinds {
		if k == b.Kind() {
			f.kindIdx = i
		}
	}
	var divisor, start, end string
	switch cond := b.Cond.(type) {
	case fizzbuzz.Divisor:
		divisor = strconv.Itoa(cond.Divisor)
	case fizzbuzz.Range:
		start = strconv.Itoa(cond.Start)
		end = strconv.Itoa(cond.End)
	}
	f.rebuildInputs(b.Word, divisor, start, end)
	cmd := f.setFocus(0)
	return f, cmd
}

// rebuildInputs lays out the fields for the current kind, carrying the
// given values into the matching inputs.
func (f *FormModel) rebuildInputs(word, divisor, start, end string) {
	switch formKinds[f.kindIdx] {
	case fizzbuzz.KindDivisor:
		f.labels = []string{"Divisor", "Word"}
		f.inputs = []textinput.Model{
			newFormInput(divisor, "3", 10),
			newFormInput(word, "Fizz", 32),
		}
	case fizzbuzz.KindRange:
		f.labels = []string{"Start", "End", "Word"}
		f.inputs = []textinput.Model{
			newFormInput(start, "10", 10),
			newFormInput(end, "20", 10),
			newFormInput(word, "Teen", 32),
		}
	default: // prime and fibonacci need only a word
		f.labels = []string{"Word"}
		f.inputs = []textinput.Model{
			newFormInput(word, "Prime", 32),
		}
	}
}

func newFormInput(value, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 20
	ti.SetValue(value)
	return ti
}

// setFocus moves the focus to the given slot and returns the blink
// command for the newly focused input, if any.
func (f *FormModel) setFocus(slot int) tea.Cmd {
	total := len(f.inputs) + 1
	if slot < 0 {
		slot = total - 1
	}
	if slot >= total {
		slot = 0
	}
	f.focus = slot
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == slot-1 {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

// cycleKind steps the kind selector, keeping the word already typed.
func (f *FormModel) cycleKind(delta int) {
	word := f.wordValue()
	f.kindIdx = (f.kindIdx + delta + len(formKinds)) % len(formKinds)
	f.rebuildInputs(word, "", "", "")
	f.errText = ""
}

// wordValue returns the current content of the word field.
func (f *FormModel) wordValue() string {
	for i, label := range f.labels {
		if label == "Word" {
			return f.inputs[i].Value()
		}
	}
	return ""
}

// Update processes one message while the form is open.
func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.forwardToFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		f.cancelled = true
		return f, nil
	case "enter":
		if f.focus == len(f.inputs) {
			f.submit()
			return f, nil
		}
		return f, f.setFocus(f.focus + 1)
	case "tab", "down":
		return f, f.setFocus(f.focus + 1)
	case "shift+tab", "up":
		return f, f.setFocus(f.focus - 1)
	case "left":
		if f.focus == 0 {
			f.cycleKind(-1)
			return f, nil
		}
	case "right":
		if f.focus == 0 {
			f.cycleKind(+1)
			return f, nil
		}
	}
	return f.forwardToFocused(msg)
}

// forwardToFocused hands the message to the focused text input.
func (f FormModel) forwardToFocused(msg tea.Msg) (FormModel, tea.Cmd) {
	idx := f.focus - 1
	if idx < 0 || idx >= len(f.inputs) {
		return f, nil
	}
	var cmd tea.Cmd
	f.inputs[idx], cmd = f.inputs[idx].Update(msg)
	return f, cmd
}

// submit builds the candidate block from the field values. Any parse or
// validation failure lands in errText and keeps the form open.
func (f *FormModel) submit() {
	word := strings.TrimSpace(f.wordValue())

	var b fizzbuzz.Block
	switch formKinds[f.kindIdx] {
	case fizzbuzz.KindDivisor:
		n, err := f.intField("Divisor")
		if err != nil {
			f.errText = err.Error()
			return
		}
		b = fizzbuzz.NewDivisorBlock(word, word, n, f.order)
	case fizzbuzz.KindPrime:
		b = fizzbuzz.NewPrimeBlock(word, word, f.order)
	case fizzbuzz.KindFibonacci:
		b = fizzbuzz.NewFibonacciBlock(word, word, f.order)
	case fizzbuzz.KindRange:
		lo, err := f.intField("Start")
		if err != nil {
			f.errText = err.Error()
			return
		}
		hi, err := f.intField("End")
		if err != nil {
			f.errText = err.Error()
			return
		}
		b = fizzbuzz.NewRangeBlock(word, word, lo, hi, f.order)
	}

	if err := b.Validate(); err != nil {
		f.errText = err.Error()
		return
	}
	f.errText = ""
	f.block = b
	f.done = true
}

// intField parses the named field as an integer.
func (f *FormModel) intField(label string) (int, error) {
	for i, l := range f.labels {
		if l != label {
			continue
		}
		raw := strings.TrimSpace(f.inputs[i].Value())
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%s must be a number, got %q", strings.ToLower(label), raw)
		}
		return n, nil
	}
	return 0, fmt.Errorf("missing %s field", strings.ToLower(label))
}

// View renders the overlay centered on the screen.
func (f FormModel) View(screenWidth, screenHeight int) string {
	var b strings.Builder

	title := "Add Rule"
	if f.editID != "" {
		title = "Edit Rule"
	}
	b.WriteString(formTitleStyle.Render(title))
	b.WriteString("\n\n")

	kind := string(formKinds[f.kindIdx])
	kindRow := fmt.Sprintf("◂ %s ▸", kind)
	if f.focus == 0 {
		kindRow = formKindStyle.Render(kindRow)
	} else {
		kindRow = dimStyle.Render(kindRow)
	}
	b.WriteString(fmt.Sprintf("%s %s\n", formLabelStyle.Render(fmt.Sprintf("%-8s", "Kind")), kindRow))

	for i, label := range f.labels {
		b.WriteString(fmt.Sprintf("%s %s\n", formLabelStyle.Render(fmt.Sprintf("%-8s", label)), f.inputs[i].View()))
	}

	if f.errText != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(f.errText))
	}

	b.WriteString("\n")
	b.WriteString(formHintStyle.Render("←/→ kind • enter next/save • esc cancel"))

	box := formBoxStyle.Render(b.String())
	return lipgloss.Place(screenWidth, screenHeight, lipgloss.Center, lipgloss.Center, box)
}
