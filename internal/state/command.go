package state

import (
	"fmt"
)

// CommandKind selects the variant of a Command.
type CommandKind int

const (
	CommandSearch CommandKind = iota
	CommandCreateFile
	CommandCreateDir
	CommandDelete
	CommandRename
	CommandCopy
)

func (k CommandKind) String() string {
	switch k {
	case CommandSearch:
		return "search"
	case CommandCreateFile:
		return "create-file"
	case CommandCreateDir:
		return "create-dir"
	case CommandDelete:
		return "delete"
	case CommandRename:
		return "rename"
	case CommandCopy:
		return "copy"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// needsTarget reports whether the variant operates on the selected entry.
func (k CommandKind) needsTarget() bool {
	switch k {
	case CommandDelete, CommandRename, CommandCopy:
		return true
	default:
		return false
	}
}

// Command is the prompt-driven unit of user intent. Its buffer lives exactly
// as long as the prompt.
type Command struct {
	Kind   CommandKind
	Prompt string

	// Target is the entry the command acts on (Delete, Rename, Copy).
	Target *FileEntry
	// Targets holds every entry a Delete removes when entries are marked.
	Targets []FileEntry

	buffer []rune
}

// NewCommand builds a command of kind. Rename and Copy seed the buffer with
// the target's absolute path.
func NewCommand(kind CommandKind, target *FileEntry, marked []FileEntry) *Command {
	cmd := &Command{Kind: kind}
	if target != nil {
		t := *target
		cmd.Target = &t
	}

	switch kind {
	case CommandSearch:
		cmd.Prompt = "/"
	case CommandCreateFile:
		cmd.Prompt = " Create new file: "
	case CommandCreateDir:
		cmd.Prompt = " Create new directory: "
	case CommandDelete:
		cmd.Targets = marked
		if len(cmd.Targets) == 0 && cmd.Target != nil {
			cmd.Targets = []FileEntry{*cmd.Target}
		}
		if len(cmd.Targets) > 1 {
			cmd.Prompt = fmt.Sprintf(" Delete %d marked entries? [y/n]: ", len(cmd.Targets))
		} else {
			cmd.Prompt = " Are you sure you want to delete this [y/n]: "
		}
	case CommandRename:
		cmd.Prompt = " Rename file: "
		cmd.seedFromTarget()
	case CommandCopy:
		cmd.Prompt = " Copy file to: "
		cmd.seedFromTarget()
	}
	return cmd
}

func (c *Command) seedFromTarget() {
	if c.Target != nil {
		c.buffer = []rune(c.Target.Path)
	}
}

// Text returns the buffer contents.
func (c *Command) Text() string {
	return string(c.buffer)
}

// Line returns the prompt followed by the buffer, as shown to the user.
func (c *Command) Line() string {
	return c.Prompt + c.Text()
}

// Append adds r to the buffer. Delete holds at most one character.
func (c *Command) Append(r rune) {
	if c.Kind == CommandDelete && len(c.buffer) > 0 {
		return
	}
	c.buffer = append(c.buffer, r)
}

// Backspace removes the last rune. It reports true when the buffer was
// already empty, meaning the command should be cancelled.
func (c *Command) Backspace() bool {
	if len(c.buffer) == 0 {
		return true
	}
	c.buffer = c.buffer[:len(c.buffer)-1]
	return false
}

// Confirmed reports whether a Delete buffer holds a literal yes.
func (c *Command) Confirmed() bool {
	text := c.Text()
	return text == "y" || text == "Y"
}
