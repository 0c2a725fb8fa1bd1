package fs

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies a directory entry.
type Kind int

const (
	KindRegularFile Kind = iota
	KindDirectory
	KindSymlink
	KindExecutable
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindSymlink:
		return "symlink"
	case KindExecutable:
		return "executable"
	default:
		return "file"
	}
}

// Permissions holds the 9 owner/group/other rwx bits of an entry.
type Permissions uint16

const (
	// InvalidPermissions marks metadata that could not be read.
	InvalidPermissions Permissions = 1 << 15

	// InvalidPermissionsText is rendered for any value outside the 9-bit range.
	InvalidPermissionsText = "?permissions?"

	permissionBits = 9
	ownerExecBit   = 0o100
)

// Valid reports whether p fits in 9 bits.
func (p Permissions) Valid() bool {
	return p < 512
}

// String renders p as "rwxrwxrwx", owner-read first.
func (p Permissions) String() string {
	if !p.Valid() {
		return InvalidPermissionsText
	}
	const letters = "rwx"
	var b strings.Builder
	b.Grow(permissionBits)
	for bit := permissionBits - 1; bit >= 0; bit-- {
		if p&(1<<bit) == 0 {
			b.WriteByte('-')
			continue
		}
		b.WriteByte(letters[(permissionBits-1-bit)%3])
	}
	return b.String()
}

// Entry represents a single file or directory on disk.
type Entry struct {
	Name     string
	Path     string
	Kind     Kind
	Perms    Permissions
	Size     int64
	Modified time.Time

	// Marked is set for entries selected for a multi-target operation.
	Marked bool
	// Undecodable reports that the on-disk name is not valid UTF-8 and Name
	// holds a lossy rendering of it.
	Undecodable bool
}

// IsDir reports whether the entry is a real directory (not a link to one).
func (e Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// HumanSize formats the entry size for display.
func (e Entry) HumanSize() string {
	return SizeToHuman(e.Size)
}

// newEntry classifies info for the object at fullPath. A nil info produces a
// regular file with invalid permissions.
func newEntry(rawName, fullPath string, info os.FileInfo) Entry {
	name, undecodable := displayName(rawName)
	entry := Entry{
		Name:        name,
		Path:        fullPath,
		Kind:        KindRegularFile,
		Perms:       InvalidPermissions,
		Undecodable: undecodable,
	}
	if info == nil {
		return entry
	}

	mode := info.Mode()
	entry.Perms = Permissions(mode.Perm())
	entry.Size = info.Size()
	entry.Modified = info.ModTime()

	switch {
	case mode&os.ModeSymlink != 0:
		entry.Kind = KindSymlink
	case mode.IsDir():
		entry.Kind = KindDirectory
	case mode.Perm()&ownerExecBit != 0:
		entry.Kind = KindExecutable
	}
	return entry
}

func displayName(raw string) (string, bool) {
	if !utf8.ValidString(raw) {
		return norm.NFC.String(strings.ToValidUTF8(raw, "\uFFFD")), true
	}
	return norm.NFC.String(raw), false
}

var sizeUnits = [...]string{"", "k", "M", "G", "T", "E"}

// SizeToHuman formats size using base-1000 units. A unit is promoted once the
// value reaches 999.95 so that rounding never prints "1000.00".
func SizeToHuman(size int64) string {
	if size < 0 {
		size = 0
	}
	value := float64(size)
	unit := 0
	for value >= 999.95 && unit < len(sizeUnits)-1 {
		value /= 1000
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d B", size)
	}
	return fmt.Sprintf("%.2f %sB", value, sizeUnits[unit])
}
