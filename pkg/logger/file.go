package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FilePattern patrón glob de los archivos de log.
const FilePattern = "log-*.txt"

// FileName nombre del archivo de log del día de t (hora local).
func FileName(t time.Time) string {
	return "log-" + t.Format("20060102") + ".txt"
}

// DailyFile io.Writer que escribe en Dir/log-YYYYMMDD.txt y cambia de archivo al cambiar el día.
type DailyFile struct {
	dir string
	now func() time.Time

	mu   sync.Mutex
	day  string
	file *os.File
}

// OpenDailyFile crea la carpeta si falta y abre el archivo del día.
func OpenDailyFile(dir string) (*DailyFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create logs dir: %w", err)
	}
	d := &DailyFile{dir: dir, now: time.Now}
	if err := d.rotate(d.now()); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *DailyFile) rotate(t time.Time) error {
	name := FileName(t)
	if d.file != nil && d.day == name {
		return nil
	}
	f, err := os.OpenFile(filepath.Join(d.dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if d.file != nil {
		_ = d.file.Close()
	}
	d.file, d.day = f, name
	return nil
}

// Write implementa io.Writer.
func (d *DailyFile) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.rotate(d.now()); err != nil {
		return 0, err
	}
	return d.file.Write(p)
}

// Close cierra el archivo actual.
func (d *DailyFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.file == nil {
		return nil
	}
	err := d.file.Close()
	d.file = nil
	return err
}
