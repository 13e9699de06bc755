package model

import (
	"testing"
	"time"
)

func TestSessionModel_BasicLifecycle(t *testing.T) {
	m := NewSessionModel()

	// Record for 5s.
	m.OnTick(true, 0)
	m.OnTick(true, 5*time.Second)
	session, total := m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("expected 5s session & total; got session=%v total=%v", session, total)
	}

	// Stop with the controller's frozen duration.
	m.OnTick(false, 5*time.Second)
	session, total = m.Values()
	if session != 5*time.Second || total != 5*time.Second {
		t.Fatalf("after stop expected persisted 5s; got session=%v total=%v", session, total)
	}

	// Idle ticks change nothing.
	m.OnTick(false, 0)
	if s, tt := m.Values(); s != session || tt != total {
		t.Fatalf("idle tick should not change durations: session=%v total=%v", s, tt)
	}

	// Second session lasting 3s.
	m.OnTick(true, 0)
	m.OnTick(true, 3*time.Second)
	s3, t3 := m.Values()
	if s3 != 3*time.Second || t3 != 8*time.Second {
		t.Fatalf("second session: session=%v total=%v", s3, t3)
	}
	m.OnTick(false, 3*time.Second)
	if _, tFinal := m.Values(); tFinal != 8*time.Second {
		t.Fatalf("final total %v", tFinal)
	}
	if m.Sessions() != 2 {
		t.Fatalf("sessions %d", m.Sessions())
	}
}

func TestSessionModel_NilSafe(t *testing.T) {
	var m *SessionModel
	m.OnTick(true, time.Second)
	if s, tt := m.Values(); s != 0 || tt != 0 {
		t.Fatal("nil model should report zero")
	}
}
