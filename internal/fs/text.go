package fs

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

const (
	textDetectionSampleSize      = 4096
	nonPrintableThresholdPercent = 30
)

// byteOrderMarks lists the BOMs we decode. Entries without utf16 are UTF-8.
var byteOrderMarks = []struct {
	mark   []byte
	endian unicode.Endianness
	utf16  bool
}{
	{mark: []byte{0xEF, 0xBB, 0xBF}},
	{mark: []byte{0xFF, 0xFE}, endian: unicode.LittleEndian, utf16: true},
	{mark: []byte{0xFE, 0xFF}, endian: unicode.BigEndian, utf16: true},
}

var binaryExtensions = map[string]struct{}{
	".7z": {}, ".bin": {}, ".bz2": {}, ".class": {}, ".dll": {}, ".dylib": {},
	".exe": {}, ".gif": {}, ".gz": {}, ".ico": {}, ".iso": {}, ".jar": {},
	".jpeg": {}, ".jpg": {}, ".mp3": {}, ".mp4": {}, ".o": {}, ".pdf": {},
	".png": {}, ".so": {}, ".tar": {}, ".tgz": {}, ".wasm": {}, ".xz": {},
	".zip": {},
}

// IsTextFile reports whether content looks like text. The path extension
// short-circuits well-known binary formats.
func IsTextFile(path string, content []byte) bool {
	if _, ok := binaryExtensions[strings.ToLower(filepath.Ext(path))]; ok && path != "" {
		return false
	}
	if len(content) == 0 {
		return true
	}

	sample := content
	if len(sample) > textDetectionSampleSize {
		sample = sample[:textDetectionSampleSize]
	}
	if hasByteOrderMark(sample) {
		return true
	}
	if bytes.IndexByte(sample, 0x00) != -1 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}

	// Legacy 8-bit encodings: tolerate high bytes, count stray control bytes.
	controls := 0
	for _, b := range sample {
		if b == 0x7F || (b < 0x20 && b != '\t' && b != '\n' && b != '\r' && b != 0x1B) {
			controls++
		}
	}
	return controls*100/len(sample) < nonPrintableThresholdPercent
}

// ReadTextSample returns the first few KiB of path for sniffing and previews.
func ReadTextSample(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classify("read", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(f, textDetectionSampleSize))
	if err != nil {
		return nil, classify("read", path, err)
	}
	return data, nil
}

// NormalizeTextContent strips a UTF-8 BOM or decodes BOM-marked UTF-16 into a
// Go string. Anything else is returned as is.
func NormalizeTextContent(content []byte) string {
	for _, bom := range byteOrderMarks {
		if !bytes.HasPrefix(content, bom.mark) {
			continue
		}
		if !bom.utf16 {
			return string(content[len(bom.mark):])
		}
		out, err := unicode.UTF16(bom.endian, unicode.ExpectBOM).NewDecoder().Bytes(content)
		if err != nil {
			return string(content)
		}
		return string(out)
	}
	return string(content)
}

func hasByteOrderMark(sample []byte) bool {
	for _, bom := range byteOrderMarks {
		if bytes.HasPrefix(sample, bom.mark) {
			return true
		}
	}
	return false
}
