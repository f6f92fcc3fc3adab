package viewer

// MaxLineNum bounds the digit accumulator: a count or target line beyond
// this is almost certainly a mistyped sequence, so further digits are
// silently ignored rather than overflowing.
const MaxLineNum = 999_999

// InputAccumulator collects a leading digit sequence (vim-style counts and
// line-number prefixes) ahead of the command character that consumes it.
type InputAccumulator struct {
	value  uint32
	active bool
}

// PushDigit appends d (0-9) to the accumulator, ignoring it once the
// running total would exceed MaxLineNum.
func (a *InputAccumulator) PushDigit(d uint32) {
	next := a.value*10 + d
	if next > MaxLineNum {
		return
	}
	a.value = next
	a.active = true
}

// Take returns the accumulated value (0 if none was entered) and resets
// the accumulator.
func (a *InputAccumulator) Take() uint32 {
	v := a.value
	a.reset()
	return v
}

// Peek returns the accumulated value without resetting it.
func (a *InputAccumulator) Peek() uint32 { return a.value }

// IsActive reports whether any digit has been entered since the last
// reset.
func (a *InputAccumulator) IsActive() bool { return a.active }

func (a *InputAccumulator) reset() {
	a.value = 0
	a.active = false
}

// Reset clears the accumulator without returning its value, used on Esc.
func (a *InputAccumulator) Reset() { a.reset() }

// ActionKind identifies a Normal-mode action. The set is the union of
// every action referenced across the viewer's mode handlers: scrolling,
// jumping, yanking, entering the other three modes, and opening URLs.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionQuit
	ActionScrollDown
	ActionScrollUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionJumpToTop
	ActionJumpToBottom
	ActionJumpToLine
	ActionYankExact
	ActionYankExactPrompt
	ActionYankBlock
	ActionYankBlockPrompt
	ActionCancelInput
	ActionDigit
	ActionEnterSearch
	ActionEnterCommand
	ActionSearchNextMatch
	ActionSearchPrevMatch
	ActionOpenURL
	ActionOpenURLPrompt
	ActionEnterURLPicker
)

// Action is one decoded Normal-mode input, with the numeric accumulator's
// value (where the action takes a count) carried alongside the kind.
type Action struct {
	Kind  ActionKind
	Count uint32
}

// MapKey decodes a raw key plus the current accumulator state into a
// Normal-mode Action, mutating acc as digits are consumed. Digits
// accumulate; every other recognized key consumes and resets the
// accumulator.
func MapKey(k Key, acc *InputAccumulator) Action {
	if k.Kind == KeyCtrlC {
		return Action{Kind: ActionQuit}
	}
	if k.Kind == KeyEsc {
		acc.Reset()
		return Action{Kind: ActionCancelInput}
	}
	if k.Kind == KeyDown || k.Kind == KeyUp {
		count := acc.Take()
		kind := ActionScrollDown
		if k.Kind == KeyUp {
			kind = ActionScrollUp
		}
		return scrollAction(kind, count, count > 0)
	}
	if k.Kind != KeyRune {
		return Action{Kind: ActionNone}
	}

	r := k.Rune
	if r >= '0' && r <= '9' {
		acc.PushDigit(uint32(r - '0'))
		return Action{Kind: ActionDigit}
	}

	count := acc.Take()
	hadCount := count > 0

	switch r {
	case 'q':
		return Action{Kind: ActionQuit}
	case 'j':
		return scrollAction(ActionScrollDown, count, hadCount)
	case 'k':
		return scrollAction(ActionScrollUp, count, hadCount)
	case 'd':
		return scrollAction(ActionHalfPageDown, count, hadCount)
	case 'u':
		return scrollAction(ActionHalfPageUp, count, hadCount)
	case 'g':
		if hadCount {
			return Action{Kind: ActionJumpToLine, Count: count}
		}
		return Action{Kind: ActionJumpToTop}
	case 'G':
		if hadCount {
			return Action{Kind: ActionJumpToLine, Count: count}
		}
		return Action{Kind: ActionJumpToBottom}
	case 'y':
		if hadCount {
			return Action{Kind: ActionYankExact, Count: count}
		}
		return Action{Kind: ActionYankExactPrompt}
	case 'Y':
		if hadCount {
			return Action{Kind: ActionYankBlock, Count: count}
		}
		return Action{Kind: ActionYankBlockPrompt}
	case 'o':
		if hadCount {
			return Action{Kind: ActionOpenURL, Count: count}
		}
		return Action{Kind: ActionOpenURLPrompt}
	case 'O', 'f':
		return Action{Kind: ActionEnterURLPicker}
	case '/':
		return Action{Kind: ActionEnterSearch}
	case ':':
		return Action{Kind: ActionEnterCommand}
	case 'n':
		return Action{Kind: ActionSearchNextMatch}
	case 'N':
		return Action{Kind: ActionSearchPrevMatch}
	}

	return Action{Kind: ActionNone}
}

func scrollAction(kind ActionKind, count uint32, hadCount bool) Action {
	if !hadCount {
		count = 1
	}
	return Action{Kind: kind, Count: count}
}

// SearchActionKind identifies a Search-mode keystroke.
type SearchActionKind int

const (
	SearchType SearchActionKind = iota
	SearchBackspace
	SearchSelectNext
	SearchSelectPrev
	SearchConfirm
	SearchCancel
)

// SearchAction is one decoded Search-mode input.
type SearchAction struct {
	Kind SearchActionKind
	Rune rune
}

// MapSearchKey decodes a raw key during Search mode: typed runes extend
// the query, arrows move the selection, Enter confirms, Esc cancels.
func MapSearchKey(k Key) SearchAction {
	switch k.Kind {
	case KeyEnter:
		return SearchAction{Kind: SearchConfirm}
	case KeyEsc, KeyCtrlC:
		return SearchAction{Kind: SearchCancel}
	case KeyBackspace:
		return SearchAction{Kind: SearchBackspace}
	case KeyDown:
		return SearchAction{Kind: SearchSelectNext}
	case KeyUp:
		return SearchAction{Kind: SearchSelectPrev}
	case KeyRune:
		return SearchAction{Kind: SearchType, Rune: k.Rune}
	}
	return SearchAction{Kind: SearchType, Rune: 0}
}

// CommandActionKind identifies a Command-mode keystroke.
type CommandActionKind int

const (
	CommandType CommandActionKind = iota
	CommandBackspace
	CommandExecute
	CommandCancel
)

// CommandAction is one decoded Command-mode input.
type CommandAction struct {
	Kind CommandActionKind
	Rune rune
}

// MapCommandKey mirrors MapSearchKey for the ":" command line.
func MapCommandKey(k Key) CommandAction {
	switch k.Kind {
	case KeyEnter:
		return CommandAction{Kind: CommandExecute}
	case KeyEsc, KeyCtrlC:
		return CommandAction{Kind: CommandCancel}
	case KeyBackspace:
		return CommandAction{Kind: CommandBackspace}
	case KeyRune:
		return CommandAction{Kind: CommandType, Rune: k.Rune}
	}
	return CommandAction{Kind: CommandType, Rune: 0}
}

// URLActionKind identifies a URL-picker-mode keystroke.
type URLActionKind int

const (
	URLSelectNext URLActionKind = iota
	URLSelectPrev
	URLConfirm
	URLCancel
)

// URLAction is one decoded URL-picker-mode input.
type URLAction struct {
	Kind URLActionKind
}

// MapURLKey decodes a raw key during the URL picker: j/k or arrows move
// the selection, Enter confirms, Esc/q cancels.
func MapURLKey(k Key) URLAction {
	switch k.Kind {
	case KeyEnter:
		return URLAction{Kind: URLConfirm}
	case KeyEsc, KeyCtrlC:
		return URLAction{Kind: URLCancel}
	case KeyDown:
		return URLAction{Kind: URLSelectNext}
	case KeyUp:
		return URLAction{Kind: URLSelectPrev}
	case KeyRune:
		switch k.Rune {
		case 'j':
			return URLAction{Kind: URLSelectNext}
		case 'k':
			return URLAction{Kind: URLSelectPrev}
		case 'q':
			return URLAction{Kind: URLCancel}
		}
	}
	return URLAction{Kind: URLCancel}
}
