package viewer

import "strings"

// CommandState is the live text of an in-progress ":" command line.
type CommandState struct {
	Input string
}

// HandleCommandKey applies one Command-mode key, matching the vim
// convention that Backspace on an empty line cancels rather than doing
// nothing.
func HandleCommandKey(a CommandAction, state *CommandState) []Effect {
	switch a.Kind {
	case CommandType:
		if a.Rune != 0 {
			state.Input += string(a.Rune)
		}
		return []Effect{EffectMarkDirty{}}

	case CommandBackspace:
		if state.Input == "" {
			return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
		}
		r := []rune(state.Input)
		state.Input = string(r[:len(r)-1])
		return []Effect{EffectMarkDirty{}}

	case CommandExecute:
		cmd := strings.TrimSpace(state.Input)
		state.Input = ""
		switch cmd {
		case "":
			return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
		case "reload", "rel":
			return []Effect{EffectExit{Reason: ExitReason{Kind: ExitConfigReload}}}
		case "q", "quit":
			return []Effect{EffectExit{Reason: ExitReason{Kind: ExitQuit}}}
		default:
			return []Effect{
				EffectFlash{Message: "Unknown command: " + cmd},
				EffectSetMode{Mode: ModeNormal},
			}
		}

	case CommandCancel:
		state.Input = ""
		return []Effect{EffectSetMode{Mode: ModeNormal}, EffectMarkDirty{}}
	}
	return nil
}
