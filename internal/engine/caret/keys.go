package caret

// Action is a keyboard-driven caret command.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionHome
	ActionEnd
	ActionPageUp
	ActionPageDown
	ActionCommit
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionUp:
		return "up"
	case ActionDown:
		return "down"
	case ActionLeft:
		return "left"
	case ActionRight:
		return "right"
	case ActionHome:
		return "home"
	case ActionEnd:
		return "end"
	case ActionPageUp:
		return "pageup"
	case ActionPageDown:
		return "pagedown"
	case ActionCommit:
		return "commit"
	default:
		return "none"
	}
}

// Do applies a keyboard action. ctrl selects the ctrl+home / ctrl+end variants.
// A vetoed action changes nothing and returns the veto.
func (m *Model) Do(a Action, ctrl bool) error {
	cols := int64(m.win.Cols())
	rows := int64(m.win.Rows())
	limit := m.win.Limit()
	caret := m.state.Caret

	switch a {
	case ActionUp:
		return m.SetCaret(caret - cols)
	case ActionDown:
		return m.SetCaret(min(caret+cols, limit))
	case ActionLeft:
		return m.SetCaret(caret - 1)
	case ActionRight:
		return m.SetCaret(caret + 1)
	case ActionHome:
		if ctrl {
			return m.Seek(0)
		}
		return m.SetCaret(caret - caret%cols)
	case ActionEnd:
		if ctrl {
			rowsTotal := (limit + rows - 1) / rows
			return m.Seek(cols*rowsTotal - cols*rows)
		}
		return m.SetCaret(min(caret+cols-1-caret%cols, limit))
	case ActionPageDown:
		return m.Skip(cols)
	case ActionPageUp:
		return m.Skip(-cols)
	case ActionCommit:
		m.Commit("")
		return nil
	}
	return nil
}

// ClickHex moves the caret to the byte under cell of the hex column.
// Cells are laid out as two digits and a separator per byte; clicks on a
// separator do nothing.
func (m *Model) ClickHex(cell int) error {
	if cell < 0 || (cell+1)%3 == 0 {
		return nil
	}
	return m.SetCaret(m.win.Offset() + int64((cell+1)/3))
}

// ClickText moves the caret to the byte under cell of the text column.
func (m *Model) ClickText(cell int) error {
	if cell < 0 {
		return nil
	}
	return m.SetCaret(m.win.Offset() + int64(cell))
}
