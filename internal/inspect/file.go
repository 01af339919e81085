// Package inspect gathers local context for prompts: file metadata for
// `px context` and command resolution for `px help`.
package inspect

import (
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// NotFoundError indicates the path does not reference an existing regular file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("File not found: %s", e.Path)
}

// FileContext holds metadata about a file for prompt interpolation.
type FileContext struct {
	Path    string
	Type    string
	Size    string
	Created string
}

// File inspects a file and returns its context.
func File(path string) (*FileContext, error) {
	return FileWithDebug(path, false)
}

// FileWithDebug inspects a file with optional debug logging.
func FileWithDebug(path string, debug bool) (*FileContext, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, &NotFoundError{Path: path}
	}

	fc := &FileContext{
		Path:    path,
		Type:    detectType(path, debug),
		Size:    humanize.Bytes(uint64(info.Size())),
		Created: createdTime(path, info.ModTime(), debug),
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Inspect: file %s (type=%s, size=%s, created=%s)\n",
			fc.Path, fc.Type, fc.Size, fc.Created)
	}

	return fc, nil
}

// detectType asks file(1) for the MIME type, falling back to content sniffing
// when the binary is unavailable.
func detectType(path string, debug bool) string {
	out, err := exec.Command("file", "--brief", "--mime-type", path).Output()
	if err == nil {
		if t := strings.TrimSpace(string(out)); t != "" {
			return t
		}
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Inspect: file(1) unavailable, sniffing content\n")
	}

	f, err := os.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	return http.DetectContentType(buf[:n])
}

// createdTime returns the file's creation timestamp. Birth time is not
// portable: BSD stat spells it -f %SB, GNU stat spells it -c %w (and may
// report "-" on filesystems without birth times). Both flavors are tried
// before falling back to the modification time.
func createdTime(path string, modTime time.Time, debug bool) string {
	if out, err := exec.Command("stat", "-f", "%SB", path).Output(); err == nil {
		if t := strings.TrimSpace(string(out)); t != "" && t != "-" {
			return t
		}
	}

	if out, err := exec.Command("stat", "-c", "%w", path).Output(); err == nil {
		if t := strings.TrimSpace(string(out)); t != "" && t != "-" {
			return t
		}
	}

	if debug {
		fmt.Fprintf(os.Stderr, "[DEBUG] Inspect: no birth time from stat, using mtime\n")
	}

	return modTime.Format(time.RFC1123)
}
