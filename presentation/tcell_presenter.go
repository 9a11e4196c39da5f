package presentation

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"telekey/wire"
)

// TcellPresenter is the real terminal Presenter, built on
// github.com/gdamore/tcell/v2: its Screen.PollEvent model maps directly
// onto the blocking ReadKey contract.
type TcellPresenter struct {
	screen    tcell.Screen
	statusRow int
}

// NewTcellPresenter initializes a tcell screen in raw mode.
func NewTcellPresenter() (*TcellPresenter, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("boundary: new screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("boundary: init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.Clear()
	screen.Show()
	return &TcellPresenter{screen: screen}, nil
}

func (p *TcellPresenter) Close() {
	p.screen.Fini()
}

var namedTermKeys = map[tcell.Key]TermKeyName{
	tcell.KeyBackspace:  TermBackspace,
	tcell.KeyBackspace2: TermBackspace,
	tcell.KeyEnter:      TermEnter,
	tcell.KeyLeft:       TermLeft,
	tcell.KeyRight:      TermRight,
	tcell.KeyUp:         TermUp,
	tcell.KeyDown:       TermDown,
	tcell.KeyHome:       TermHome,
	tcell.KeyEnd:        TermEnd,
	tcell.KeyPgUp:       TermPageUp,
	tcell.KeyPgDn:       TermPageDown,
	tcell.KeyTab:        TermTab,
	tcell.KeyDelete:     TermDelete,
	tcell.KeyInsert:     TermInsert,
	tcell.KeyEsc:        TermEsc,
}

// ReadKey blocks on the screen's event loop until an actionable key
// event arrives, translating tcell's event model into a TermKey.
func (p *TcellPresenter) ReadKey() (TermKey, error) {
	for {
		ev := p.screen.PollEvent()
		if ev == nil {
			return TermKey{}, fmt.Errorf("boundary: terminal event stream closed")
		}
		keyEv, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		if keyEv.Key() == tcell.KeyRune {
			return TermKey{IsChar: true, Char: keyEv.Rune()}, nil
		}
		if keyEv.Modifiers()&tcell.ModShift != 0 {
			return TermKey{Name: TermShift}, nil
		}
		if keyEv.Modifiers()&tcell.ModAlt != 0 || keyEv.Modifiers()&tcell.ModMeta != 0 {
			return TermKey{Name: TermMeta}, nil
		}
		if name, ok := namedTermKeys[keyEv.Key()]; ok {
			return TermKey{Name: name}, nil
		}
		if keyEv.Key() >= tcell.KeyF1 && keyEv.Key() <= tcell.KeyF64 {
			return TermKey{FunctionIndex: uint32(keyEv.Key()-tcell.KeyF1) + 1}, nil
		}
		return TermKey{}, nil
	}
}

func (p *TcellPresenter) ClearScreen() {
	p.screen.Clear()
	p.statusRow = 0
	p.screen.Show()
}

func (p *TcellPresenter) ClearLastLines(n int) {
	_, height := p.screen.Size()
	for row := height - n; row < height; row++ {
		if row < 0 {
			continue
		}
		p.clearRow(row)
	}
	p.screen.Show()
}

func (p *TcellPresenter) clearRow(row int) {
	width, _ := p.screen.Size()
	for col := 0; col < width; col++ {
		p.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault)
	}
}

func (p *TcellPresenter) Status(line string) {
	width, height := p.screen.Size()
	row := height - 2
	p.clearRow(row)
	for i, r := range line {
		if i >= width {
			break
		}
		p.screen.SetContent(i, row, r, nil, tcell.StyleDefault.Bold(true))
	}
	p.screen.Show()
}

func (p *TcellPresenter) History(events []wire.KeyEvent) {
	width, height := p.screen.Size()
	row := height - 1
	p.clearRow(row)
	glyphs := make([]string, 0, len(events))
	for _, evt := range events {
		glyphs = append(glyphs, strings.TrimSpace(Glyph(evt)))
	}
	line := strings.Join(glyphs, " ")
	for i, r := range line {
		if i >= width {
			break
		}
		p.screen.SetContent(i, row, r, nil, tcell.StyleDefault)
	}
	p.screen.Show()
}
