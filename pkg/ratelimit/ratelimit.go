// Package ratelimit implementa un limitador de peticiones de ventana fija
// por clave (IP o usuario). El estado vive en un Store inyectado en lugar de
// un mapa global a nivel de módulo, con expulsión por TTL de las ventanas
// vencidas para que la memoria no crezca sin límite.
package ratelimit

import (
	"sync"
	"time"
)

// Preset parámetros de un límite: peticiones permitidas por ventana.
type Preset struct {
	Requests int
	Window   time.Duration
}

// Result resultado de una comprobación.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration // cuánto falta para que la ventana se reinicie, si no se permitió
}

type window struct {
	count   int
	resetAt time.Time
}

// Store contador de ventana fija por clave, seguro para uso concurrente.
type Store struct {
	mu      sync.Mutex
	windows map[string]*window
	now     func() time.Time // inyectable en tests
	// lastSweep controla la expulsión perezosa de ventanas vencidas.
	lastSweep  time.Time
	sweepEvery time.Duration
}

// NewStore construye el store. now puede ser nil (usa time.Now).
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		windows:    make(map[string]*window),
		now:        now,
		sweepEvery: time.Minute,
	}
}

// Check consume una petición para key bajo el preset dado y devuelve si se
// permite. La primera petición de una ventana la inicia.
func (s *Store) Check(key string, p Preset) Result {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeSweep(now)

	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &window{count: 0, resetAt: now.Add(p.Window)}
		s.windows[key] = w
	}
	if w.count >= p.Requests {
		return Result{Allowed: false, Remaining: 0, RetryAfter: w.resetAt.Sub(now)}
	}
	w.count++
	return Result{Allowed: true, Remaining: p.Requests - w.count}
}

// Len número de ventanas vivas (para tests y métricas).
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

// maybeSweep elimina ventanas vencidas como máximo una vez por sweepEvery.
// Se llama con el lock tomado.
func (s *Store) maybeSweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.sweepEvery {
		return
	}
	s.lastSweep = now
	for key, w := range s.windows {
		if !now.Before(w.resetAt) {
			delete(s.windows, key)
		}
	}
}
