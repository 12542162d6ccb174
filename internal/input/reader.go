package input

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spf13/afero"
)

// acceptedExtensions lists the file types accepted as prompt sources. The
// content is always decoded as UTF-8 text, whatever the extension claims.
var acceptedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
	".doc": true,
}

// Reader loads prompt text from files through an abstract filesystem.
type Reader struct {
	fileSystem afero.Fs
}

func NewReader(fileSystem afero.Fs) Reader { return Reader{fileSystem: fileSystem} }

// NewOSReader builds a reader over the host filesystem.
func NewOSReader() Reader { return NewReader(afero.NewOsFs()) }

// ReadFile loads a prompt file, accepting only text-bearing extensions.
func (reader Reader) ReadFile(path string) (RawInput, error) {
	extension := strings.ToLower(filepath.Ext(path))
	if !acceptedExtensions[extension] {
		return RawInput{}, fmt.Errorf("unsupported input file type %q (accepted: %s)", extension, acceptedExtensionList())
	}

	content, readErr := afero.ReadFile(reader.fileSystem, filepath.Clean(path))
	if readErr != nil {
		return RawInput{}, fmt.Errorf("read input file %s: %w", path, readErr)
	}
	if !utf8.Valid(content) {
		return RawInput{}, fmt.Errorf("input file %s is not valid UTF-8 text", path)
	}

	return RawInput{Text: string(content), Source: SourceFile}, nil
}

func acceptedExtensionList() string {
	extensions := make([]string, 0, len(acceptedExtensions))
	for extension := range acceptedExtensions {
		extensions = append(extensions, extension)
	}
	sort.Strings(extensions)
	return strings.Join(extensions, ", ")
}

// ReadAll drains the reader into a RawInput, honoring cancellation so a
// blocked stdin read cannot stall the process past its context.
func ReadAll(ctx context.Context, source io.Reader) (RawInput, error) {
	var buffer bytes.Buffer
	scanner := bufio.NewScanner(source)
	scanner.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)
	done := make(chan error, 1)
	go func() {
		for scanner.Scan() {
			_, _ = buffer.Write(scanner.Bytes())
			_, _ = buffer.WriteString("\n")
		}
		done <- scanner.Err()
	}()

	select {
	case <-ctx.Done():
		return RawInput{}, ctx.Err()
	case scanErr := <-done:
		if scanErr != nil {
			return RawInput{}, fmt.Errorf("read input stream: %w", scanErr)
		}
		return RawInput{Text: buffer.String(), Source: SourceStdin}, nil
	}
}
