// Package preferences persiste preferencias del usuario en preferences.json (carpeta de datos).
// Las claves no distinguen mayúsculas. Un archivo corrupto se ignora y se empieza de cero.
package preferences

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/jhoicas/kitchen-inventory/internal/domain/inventory"
)

// Claves conocidas.
const (
	KeyLowStockThreshold = "attention.low_stock_threshold"
	KeyExpiringSoonDays  = "attention.expiring_soon_days"
)

// ErrInvalidKey clave vacía o mal formada.
var ErrInvalidKey = errors.New("clave de preferencia inválida")

// Store preferencias en memoria respaldadas por un archivo JSON.
type Store struct {
	mu   sync.RWMutex
	v    *viper.Viper
	path string
}

// Open carga path si existe. Solo falla si no puede crear la carpeta.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create preferences dir: %w", err)
	}
	s := &Store{path: path}
	s.v = load(path)
	return s, nil
}

func load(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigType("json")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		// inexistente o corrupto
		v = viper.New()
		v.SetConfigType("json")
	}
	return v
}

// Path ruta del archivo.
func (s *Store) Path() string { return s.path }

// Get valor crudo de key.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return nil, false
	}
	return s.v.Get(key), true
}

// GetInt valor entero o def si falta o no es convertible.
func (s *Store) GetInt(key string, def int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return def
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s.v.GetString(key)))
	if err != nil || !d.IsInteger() {
		return def
	}
	return int(d.IntPart())
}

// GetDecimal valor decimal o def.
func (s *Store) GetDecimal(key string, def decimal.Decimal) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.v.IsSet(key) {
		return def
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s.v.GetString(key)))
	if err != nil {
		return def
	}
	return d
}

// Set fija key en memoria; Save la persiste.
func (s *Store) Set(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.v.Set(key, value)
	return nil
}

// Save escribe el archivo de forma atómica (temporal + rename).
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tmp := filepath.Join(filepath.Dir(s.path), ".preferences.tmp.json")
	if err := s.v.WriteConfigAs(tmp); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace preferences: %w", err)
	}
	return nil
}

// AttentionRule umbrales de "requiere atención"; valores ausentes o inválidos usan los de defecto.
func (s *Store) AttentionRule() inventory.AttentionRule {
	rule := inventory.DefaultAttentionRule()
	if low := s.GetDecimal(KeyLowStockThreshold, rule.LowStockThreshold); !low.IsNegative() {
		rule.LowStockThreshold = low
	}
	if days := s.GetInt(KeyExpiringSoonDays, rule.ExpiringSoonDays); days >= 0 {
		rule.ExpiringSoonDays = days
	}
	return rule
}
