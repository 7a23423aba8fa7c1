package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rapidxcel-logistics/internal/application/session"
	"github.com/jhoicas/rapidxcel-logistics/internal/domain/entity"
	"github.com/jhoicas/rapidxcel-logistics/internal/infrastructure/memory"
	"github.com/jhoicas/rapidxcel-logistics/pkg/logger"
)

func newManager(t *testing.T) (*session.Manager, *memory.HintRepo) {
	t.Helper()
	hints := memory.NewHintRepository()
	return session.NewManager(hints, time.Hour, logger.Nop()), hints
}

func supplier(id string) *entity.User {
	return &entity.User{ID: id, Name: "Sup " + id, Email: id + "@rx.test", Role: entity.RoleSupplier}
}

// ──────────────────────────────────────────────────────────────────────────────
// Get / Set / Clear
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_SetVisibleYEscribePista(t *testing.T) {
	ctx := context.Background()
	m, hints := newManager(t)
	s := m.Open("sid-1")

	_, ok := s.Get()
	assert.False(t, ok, "sesión nueva vacía")

	require.NoError(t, s.Set(ctx, supplier("u1")))

	u, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "u1", u.ID)
	assert.Equal(t, entity.StatusAuthenticated, s.State().Status)

	raw, err := hints.Get(ctx, "user:sid-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1","name":"Sup u1","email":"u1@rx.test","role":"Supplier"}`, string(raw))
}

func TestStore_PistaSobreviveNuevoHandle(t *testing.T) {
	ctx := context.Background()
	hints := memory.NewHintRepository()

	first := session.NewManager(hints, time.Hour, logger.Nop())
	require.NoError(t, first.Open("sid-1").Set(ctx, supplier("u1")))

	// Simula reinicio del proceso: manager nuevo, mismo almacenamiento durable.
	second := session.NewManager(hints, time.Hour, logger.Nop())
	s := second.Open("sid-1")
	_, ok := s.Get()
	assert.False(t, ok, "Get no promueve la pista")

	hint, ok := s.Hint(ctx)
	require.True(t, ok)
	assert.Equal(t, "u1", hint.ID)
	assert.Equal(t, entity.RoleSupplier, hint.Role)
}

func TestStore_ClearDosVecesIgualAUna(t *testing.T) {
	ctx := context.Background()
	m, hints := newManager(t)
	s := m.Open("sid-1")
	require.NoError(t, s.Set(ctx, supplier("u1")))

	require.NoError(t, s.Clear(ctx))
	_, okOnce := s.Get()
	stateOnce := s.State()
	hintsOnce := hints.Len()

	require.NoError(t, s.Clear(ctx))
	_, okTwice := s.Get()

	assert.Equal(t, okOnce, okTwice)
	assert.Equal(t, stateOnce, s.State())
	assert.Equal(t, hintsOnce, hints.Len())
	assert.Equal(t, 0, hints.Len())
	_, ok := s.Hint(ctx)
	assert.False(t, ok)
}

func TestStore_SetNilEsError(t *testing.T) {
	m, _ := newManager(t)
	assert.Error(t, m.Open("sid").Set(context.Background(), nil))
}

func TestStore_PistaCorruptaSeDescarta(t *testing.T) {
	ctx := context.Background()
	m, hints := newManager(t)
	require.NoError(t, hints.Set(ctx, "user:sid-1", []byte("{no es json"), 0))

	_, ok := m.Open("sid-1").Hint(ctx)
	assert.False(t, ok)
	assert.Equal(t, 0, hints.Len(), "la pista corrupta se borra")

	require.NoError(t, hints.Set(ctx, "user:sid-1", []byte(`{"id":"1","role":"Admin"}`), 0))
	_, ok = m.Open("sid-1").Hint(ctx)
	assert.False(t, ok, "rol fuera del conjunto cerrado")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tickets: gana la resolución iniciada más recientemente
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_TicketViejoNoPisaAlNuevo(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s := m.Open("sid-1")

	a := s.Begin(ctx)
	b := s.Begin(ctx)

	state, applied, err := s.Commit(ctx, b, entity.Authenticated(supplier("B")))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "B", state.User.ID)

	state, applied, err = s.Commit(ctx, a, entity.Authenticated(supplier("A")))
	require.NoError(t, err)
	assert.False(t, applied, "A llegó tarde")
	assert.Equal(t, "B", state.User.ID)

	u, _ := s.Get()
	assert.Equal(t, "B", u.ID)
}

func TestStore_TicketViejoLlegandoPrimeroSeAplicaYLuegoGanaElNuevo(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s := m.Open("sid-1")

	a := s.Begin(ctx)
	b := s.Begin(ctx)

	_, applied, _ := s.Commit(ctx, a, entity.Authenticated(supplier("A")))
	assert.True(t, applied)
	_, applied, _ = s.Commit(ctx, b, entity.Unauthenticated())
	assert.True(t, applied)

	_, ok := s.Get()
	assert.False(t, ok)
}

func TestStore_ClearInvalidaResolucionesEnVuelo(t *testing.T) {
	ctx := context.Background()
	m, hints := newManager(t)
	s := m.Open("sid-1")

	pending := s.Begin(ctx)
	require.NoError(t, s.Clear(ctx)) // logout mientras la resolución está en vuelo

	_, applied, _ := s.Commit(ctx, pending, entity.Authenticated(supplier("u1")))
	assert.False(t, applied)
	_, ok := s.Get()
	assert.False(t, ok)
	assert.Equal(t, 0, hints.Len(), "la pista no resucita")
}

func TestStore_BeginUsaPistaComoResolving(t *testing.T) {
	ctx := context.Background()
	m, hints := newManager(t)
	require.NoError(t, hints.Set(ctx, "user:sid-1", []byte(`{"id":"u1","role":"Customer"}`), 0))

	s := m.Open("sid-1")
	s.Begin(ctx)
	st := s.State()
	assert.Equal(t, entity.StatusResolving, st.Status)
	require.NotNil(t, st.User)
	assert.Equal(t, entity.RoleCustomer, st.User.Role)
	assert.Equal(t, entity.RoleUnknown, st.Role(), "Resolving no habilita rol")
}

func TestStore_AbandonRestauraEstado(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	s := m.Open("sid-1")
	require.NoError(t, s.Set(ctx, supplier("u1")))

	t1 := s.Begin(ctx)
	s.Abandon(t1)
	assert.Equal(t, entity.StatusAuthenticated, s.State().Status)

	empty := m.Open("sid-2")
	t2 := empty.Begin(ctx)
	empty.Abandon(t2)
	assert.Equal(t, entity.StatusUnauthenticated, empty.State().Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Manager
// ──────────────────────────────────────────────────────────────────────────────

func TestManager_MismoHandlePorSesion(t *testing.T) {
	m, _ := newManager(t)
	assert.Same(t, m.Open("a"), m.Open("a"))
	assert.NotSame(t, m.Open("a"), m.Open("b"))
	assert.Equal(t, 2, m.Len())
}

func TestManager_PruneRespetaResolucionesEnVuelo(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)
	busy := m.Open("busy")
	busy.Begin(ctx)
	m.Open("idle")

	time.Sleep(5 * time.Millisecond)
	n := m.Prune(time.Millisecond)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, m.Len())
	assert.Same(t, busy, m.Open("busy"))
}
