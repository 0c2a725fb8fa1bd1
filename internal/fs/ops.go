package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrCopyIntoSelf is wrapped by Copy when the destination lies inside the
// directory being copied.
var ErrCopyIntoSelf = errors.New("cannot copy a directory into itself")

// ResolveTarget turns user input into an absolute, cleaned path. Relative
// input is taken relative to cwd.
func ResolveTarget(cwd, input string) string {
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Join(cwd, input)
}

// Exists reports whether something (including a dangling link) is at path.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// CreateFile creates an empty regular file. It never truncates an existing one.
func CreateFile(path string) error {
	if Exists(path) {
		return newError(ErrAlreadyExists, "create", path, nil)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return classify("create", path, err)
	}
	return classify("create", path, f.Close())
}

// CreateDir creates a single directory.
func CreateDir(path string) error {
	if Exists(path) {
		return newError(ErrAlreadyExists, "mkdir", path, nil)
	}
	return classify("mkdir", path, os.Mkdir(path, 0o755))
}

// Remove deletes entry, recursing into real directories.
func Remove(entry Entry) error {
	if entry.Kind == KindDirectory {
		if _, err := os.Lstat(entry.Path); err != nil {
			return classify("remove", entry.Path, err)
		}
		return classify("remove", entry.Path, os.RemoveAll(entry.Path))
	}
	return classify("remove", entry.Path, os.Remove(entry.Path))
}

// Rename moves src to dst. An occupied dst is refused rather than replaced.
func Rename(src, dst string) error {
	if Exists(dst) {
		return newError(ErrAlreadyExists, "rename", dst, nil)
	}
	return classify("rename", dst, os.Rename(src, dst))
}

// Copy duplicates src at dst without touching src. Directories are copied
// recursively and symlinks are recreated as links. A failed copy removes
// whatever it had already written at dst.
func Copy(src, dst string) error {
	if Exists(dst) {
		return newError(ErrAlreadyExists, "copy", dst, nil)
	}
	info, err := os.Lstat(src)
	if err != nil {
		return classify("copy", src, err)
	}
	if info.IsDir() && isWithin(src, dst) {
		return newError(ErrUnexpected, "copy", dst, ErrCopyIntoSelf)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		err = copySymlink(src, dst, true)
	} else {
		err = copyPath(src, dst, info)
	}
	if err != nil {
		_ = os.RemoveAll(dst)
	}
	return classify("copy", dst, err)
}

// isWithin reports whether path is dir or lies below it.
func isWithin(dir, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(dir), filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

func copyPath(src, dst string, info os.FileInfo) error {
	switch {
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(src, dst, false)
	case info.IsDir():
		return copyDir(src, dst, info)
	default:
		return copyFile(src, dst, info)
	}
}

// copySymlink recreates the link at dst. Links inside a copied tree keep
// their target verbatim; a link copied on its own into another directory
// gets a relative target resolved against the source's directory.
func copySymlink(src, dst string, rebase bool) error {
	target, err := os.Readlink(src)
	if err != nil {
		return err
	}
	if rebase && !filepath.IsAbs(target) && filepath.Dir(filepath.Clean(src)) != filepath.Dir(filepath.Clean(dst)) {
		target = filepath.Join(filepath.Dir(src), target)
	}
	return os.Symlink(target, dst)
}

func copyFile(src, dst string, info os.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() {
		_ = in.Close()
	}()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func copyDir(src, dst string, info os.FileInfo) error {
	if err := os.Mkdir(dst, info.Mode().Perm()); err != nil {
		return err
	}
	children, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	for _, child := range children {
		childInfo, err := child.Info()
		if err != nil {
			return err
		}
		from := filepath.Join(src, child.Name())
		to := filepath.Join(dst, child.Name())
		if err := copyPath(from, to, childInfo); err != nil {
			return err
		}
	}
	return nil
}
