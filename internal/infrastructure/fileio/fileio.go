// Package fileio lectura y escritura de archivos de texto para importar y exportar.
// Las escrituras son atómicas: archivo temporal en la misma carpeta y rename.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/kitchen-inventory/internal/infrastructure/csvcodec"
)

// OpenText lee el archivo y lo devuelve como texto (sin BOM; Windows-1252 si no es UTF-8).
// Un archivo inexistente devuelve un error que cumple errors.Is(err, fs.ErrNotExist).
func OpenText(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	return csvcodec.DecodeText(b), nil
}

// SaveTextAs escribe content en UTF-8 (sin BOM).
func SaveTextAs(path, content string) error {
	return SaveBytesAs(path, []byte(content))
}

// SaveBytesAs escribe b reemplazando el archivo de forma atómica.
func SaveBytesAs(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
