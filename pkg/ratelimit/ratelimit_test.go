package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/verone/stock-api/pkg/ratelimit"
)

// fakeClock reloj controlado para avanzar el tiempo en tests.
type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func TestCheck_PermiteHastaElLimite(t *testing.T) {
	clock := newClock()
	store := ratelimit.NewStore(clock.now)
	p := ratelimit.Preset{Requests: 3, Window: time.Minute}

	for i := 0; i < 3; i++ {
		res := store.Check("ip-1", p)
		assert.True(t, res.Allowed)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res := store.Check("ip-1", p)
	assert.False(t, res.Allowed)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, time.Minute, res.RetryAfter)
}

// La ventana se reinicia al expirar; el contador vuelve a cero.
func TestCheck_VentanaSeReinicia(t *testing.T) {
	clock := newClock()
	store := ratelimit.NewStore(clock.now)
	p := ratelimit.Preset{Requests: 1, Window: time.Minute}

	assert.True(t, store.Check("ip-1", p).Allowed)
	assert.False(t, store.Check("ip-1", p).Allowed)

	clock.advance(time.Minute)
	assert.True(t, store.Check("ip-1", p).Allowed)
}

// Cada clave tiene su propio contador.
func TestCheck_ClavesIndependientes(t *testing.T) {
	clock := newClock()
	store := ratelimit.NewStore(clock.now)
	p := ratelimit.Preset{Requests: 1, Window: time.Minute}

	assert.True(t, store.Check("ip-1", p).Allowed)
	assert.True(t, store.Check("ip-2", p).Allowed)
	assert.False(t, store.Check("ip-1", p).Allowed)
}

// Las ventanas vencidas se expulsan en el siguiente barrido: la memoria no
// crece con claves que dejaron de pedir.
func TestCheck_ExpulsionPorTTL(t *testing.T) {
	clock := newClock()
	store := ratelimit.NewStore(clock.now)
	p := ratelimit.Preset{Requests: 5, Window: time.Second}

	for i := 0; i < 100; i++ {
		store.Check("ip-"+string(rune('a'+i%26))+string(rune('0'+i/26)), p)
	}
	assert.Greater(t, store.Len(), 1)

	// Pasado el intervalo de barrido, la siguiente comprobación limpia todo
	// lo vencido.
	clock.advance(2 * time.Minute)
	store.Check("ip-nueva", p)
	assert.Equal(t, 1, store.Len())
}
