// Package picker implements the inline terminal selector used when wtman is
// run without arguments: a query line over a fuzzy-filtered list, driven by
// raw-mode key input.
package picker

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
	"golang.org/x/term"
)

// Item is one selectable row.
type Item struct {
	Label  string
	Detail string
}

// Action reports how the user left the picker.
type Action int

const (
	ActionCancel Action = iota
	ActionSelect
	ActionCreate
	ActionDelete
)

// Outcome carries the selection. Index addresses Options.Items for
// ActionSelect and ActionDelete; Query holds the typed text for
// ActionCreate.
type Outcome struct {
	Action Action
	Index  int
	Query  string
}

// Options configures one picker run.
type Options struct {
	Title       string
	Help        string
	Items       []Item
	AllowCreate bool
	AllowDelete bool
}

// ErrNotTerminal indicates stdin or stdout is not an interactive terminal.
var ErrNotTerminal = errors.New("interactive selection requires a terminal")

const maxVisible = 10

var (
	colorTitle  = color.New(color.FgBlue, color.Bold).SprintFunc()
	colorCursor = color.New(color.FgCyan, color.Bold).SprintFunc()
	colorDetail = color.New(color.FgHiBlack).SprintFunc()
	colorHelp   = color.New(color.FgHiBlack).SprintFunc()
)

// Run displays the picker and blocks until the user selects, creates,
// deletes, or cancels.
func Run(opts Options) (Outcome, error) {
	inFd := int(os.Stdin.Fd())
	if !term.IsTerminal(inFd) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return Outcome{}, ErrNotTerminal
	}

	oldState, err := term.MakeRaw(inFd)
	if err != nil {
		return Outcome{}, err
	}
	defer term.Restore(inFd, oldState)

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	st := &state{opts: opts, width: width}
	st.refilter()

	in := bufio.NewReader(os.Stdin)
	out := bufio.NewWriter(os.Stdout)
	defer func() {
		st.clear(out)
		out.Flush()
	}()

	for {
		st.render(out)
		out.Flush()

		outcome, done, err := st.handleKey(in)
		if err != nil {
			return Outcome{}, err
		}
		if done {
			return outcome, nil
		}
	}
}

type state struct {
	opts    Options
	width   int
	query   []rune
	matched []int // indices into opts.Items, best match first
	cursor  int   // position within matched
	offset  int   // first visible row of matched
	lines   int   // rows drawn by the previous render
}

func (s *state) refilter() {
	s.matched = filter(s.opts.Items, string(s.query))
	s.cursor = 0
	s.offset = 0
}

// filter returns item indices ordered by fuzzy match quality. An empty
// query keeps the original order.
func filter(items []Item, query string) []int {
	if query == "" {
		all := make([]int, len(items))
		for i := range items {
			all[i] = i
		}
		return all
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	matches := fuzzy.Find(query, labels)
	indices := make([]int, len(matches))
	for i, m := range matches {
		indices[i] = m.Index
	}
	return indices
}

func (s *state) moveCursor(delta int) {
	if len(s.matched) == 0 {
		return
	}
	s.cursor += delta
	if s.cursor < 0 {
		s.cursor = 0
	}
	if s.cursor >= len(s.matched) {
		s.cursor = len(s.matched) - 1
	}
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+maxVisible {
		s.offset = s.cursor - maxVisible + 1
	}
}

func (s *state) handleKey(in *bufio.Reader) (Outcome, bool, error) {
	r, _, err := in.ReadRune()
	if err != nil {
		return Outcome{}, false, err
	}

	switch r {
	case 0x03: // Ctrl+C
		return Outcome{Action: ActionCancel}, true, nil
	case 0x1b:
		// Arrow keys arrive as a burst; a lone ESC is a cancel.
		if in.Buffered() == 0 {
			return Outcome{Action: ActionCancel}, true, nil
		}
		if b, err := in.ReadByte(); err != nil || b != '[' {
			return Outcome{}, false, err
		}
		b, err := in.ReadByte()
		if err != nil {
			return Outcome{}, false, err
		}
		switch b {
		case 'A':
			s.moveCursor(-1)
		case 'B':
			s.moveCursor(1)
		}
		return Outcome{}, false, nil
	case '\r', '\n':
		if len(s.matched) > 0 {
			return Outcome{Action: ActionSelect, Index: s.matched[s.cursor]}, true, nil
		}
		if s.opts.AllowCreate && len(s.query) > 0 {
			return Outcome{Action: ActionCreate, Query: string(s.query)}, true, nil
		}
		return Outcome{}, false, nil
	case 0x02: // Ctrl+B
		if s.opts.AllowCreate && len(s.query) > 0 {
			return Outcome{Action: ActionCreate, Query: string(s.query)}, true, nil
		}
		return Outcome{}, false, nil
	case 0x18: // Ctrl+X
		if s.opts.AllowDelete && len(s.matched) > 0 {
			return Outcome{Action: ActionDelete, Index: s.matched[s.cursor]}, true, nil
		}
		return Outcome{}, false, nil
	case 0x10: // Ctrl+P
		s.moveCursor(-1)
		return Outcome{}, false, nil
	case 0x0e: // Ctrl+N
		s.moveCursor(1)
		return Outcome{}, false, nil
	case '\t':
		if len(s.matched) > 0 {
			s.query = []rune(s.opts.Items[s.matched[s.cursor]].Label)
			s.refilter()
		}
		return Outcome{}, false, nil
	case 0x7f, 0x08: // Backspace
		if len(s.query) > 0 {
			s.query = s.query[:len(s.query)-1]
			s.refilter()
		}
		return Outcome{}, false, nil
	}

	if unicode.IsPrint(r) {
		s.query = append(s.query, r)
		s.refilter()
	}
	return Outcome{}, false, nil
}

func (s *state) render(out io.Writer) {
	s.clear(out)

	var b strings.Builder
	line := func(text string) {
		b.WriteString("\x1b[K")
		b.WriteString(text)
		b.WriteString("\r\n")
	}

	line(colorTitle(truncate(s.opts.Title, s.width)))
	line(truncate("> "+string(s.query), s.width))

	end := s.offset + maxVisible
	if end > len(s.matched) {
		end = len(s.matched)
	}
	for row := s.offset; row < end; row++ {
		item := s.opts.Items[s.matched[row]]
		text := item.Label
		if item.Detail != "" {
			text += " (" + item.Detail + ")"
		}
		// Truncate before coloring so escape codes are never cut in half.
		text = truncate(text, s.width-2)
		if row == s.cursor {
			line(colorCursor("❯ " + text))
		} else {
			line("· " + text)
		}
	}
	if len(s.matched) == 0 {
		line(colorDetail("  (no matches)"))
	}
	if s.opts.Help != "" {
		line(colorHelp(truncate(s.opts.Help, s.width)))
	}

	s.lines = strings.Count(b.String(), "\r\n")
	fmt.Fprint(out, b.String())
}

// clear erases the previous render, leaving the cursor at the top left of
// the picker area.
func (s *state) clear(out io.Writer) {
	if s.lines > 0 {
		fmt.Fprintf(out, "\x1b[%dA", s.lines)
	}
	fmt.Fprint(out, "\r\x1b[J")
	s.lines = 0
}

// truncate shortens text to fit width terminal cells, accounting for wide
// runes.
func truncate(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) <= width {
		return text
	}
	return runewidth.Truncate(text, width, "…")
}
