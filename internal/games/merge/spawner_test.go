package merge

import (
	"testing"
)

func TestRadiusGrowsWithValue(t *testing.T) {
	s, _ := newTestSession(t)
	sp := s.Spawner()

	tests := []struct {
		value int
		want  float64
	}{
		{2, 30},
		{4, 40},
		{8, 50},
		{16, 60},
		{1024, 120},
	}
	for _, tt := range tests {
		if got := sp.RadiusFor(tt.value); got != tt.want {
			t.Errorf("RadiusFor(%d) = %v, want %v", tt.value, got, tt.want)
		}
	}

	prev := sp.RadiusFor(2)
	for v := 4; v <= 1<<16; v *= 2 {
		r := sp.RadiusFor(v)
		if r <= prev {
			t.Errorf("RadiusFor(%d) = %v is not larger than RadiusFor(%d) = %v", v, r, v/2, prev)
		}
		prev = r
	}
}

func TestTextureFor(t *testing.T) {
	s, _ := newTestSession(t)
	if got := s.Spawner().TextureFor(64); got != "num64.png" {
		t.Errorf("TextureFor(64) = %q, want num64.png", got)
	}
	opts := s.Spawner().BodyOptions(2)
	if opts.Visual.Scale != 0.3 {
		t.Errorf("sprite scale for 2 = %v, want 0.3", opts.Visual.Scale)
	}
}

func TestNextValueFromConfiguredSet(t *testing.T) {
	s, _ := newTestSession(t)
	seen := make(map[int]bool)
	for range 500 {
		v := s.NextValue()
		if v != 2 && v != 4 && v != 8 {
			t.Fatalf("NextValue() = %d, want one of 2, 4, 8", v)
		}
		seen[v] = true
		s.Spawn(250, 80)
	}
	if len(seen) != 3 {
		t.Errorf("only saw values %v in 500 draws", seen)
	}
}

func TestSpawnRegistersBall(t *testing.T) {
	s, engine := newTestSession(t)
	want := s.NextValue()

	b := s.Spawn(120, 80)
	if b.Value != want {
		t.Errorf("spawned value = %d, want the previewed %d", b.Value, want)
	}
	if got, ok := s.Balls().FindByBody(b.Body); !ok || got != b {
		t.Error("spawned ball is not registered")
	}
	body, ok := engine.bodies[b.Body]
	if !ok || !body.added {
		t.Fatal("spawned body not added to the engine")
	}
	if body.radius != s.Spawner().RadiusFor(want) {
		t.Errorf("body radius = %v, want %v", body.radius, s.Spawner().RadiusFor(want))
	}

	c := s.Spawn(300, 80)
	if c.ID == b.ID {
		t.Error("entity ids must be unique")
	}
}
