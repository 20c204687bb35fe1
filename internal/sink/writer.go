package sink

import (
	"encoding/json"
	"os"
	"sync"

	"nordpick/internal/model"
)

// JSONLWriter appends one JSON document per ranked server, best first.
type JSONLWriter struct {
	file *os.File
	mu   sync.Mutex
}

func NewJSONL(path string) (*JSONLWriter, error) {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &JSONLWriter{file: f}, nil
}

func (w *JSONLWriter) Write(s *model.Server) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}

	_, err = w.file.Write(append(data, '\n'))
	return err
}

func (w *JSONLWriter) Close() { w.file.Close() }

// TextWriter writes one domain per line, best first.
type TextWriter struct {
	file *os.File
	mu   sync.Mutex
}

func NewText(path string) (*TextWriter, error) {
	f, err := os.OpenFile(path, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	return &TextWriter{file: f}, nil
}

func (w *TextWriter) Write(s *model.Server) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.file.WriteString(s.Domain + "\n")
	return err
}

func (w *TextWriter) Close() { w.file.Close() }
