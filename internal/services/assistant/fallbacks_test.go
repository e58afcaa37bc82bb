package assistant

import "testing"

func TestRoundRobinSelectorCycles(t *testing.T) {
	pool := NewFallbackPool(map[string][]string{
		"stressed": {"a", "b", "c"},
		"default":  {"d"},
	}, NewRoundRobinSelector())

	got := []string{pool.Pick("stressed"), pool.Pick("stressed"), pool.Pick("stressed"), pool.Pick("stressed")}
	want := []string{"a", "b", "c", "a"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("pick %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPickUnknownCategoryUsesDefault(t *testing.T) {
	pool := NewFallbackPool(map[string][]string{
		"default": {"fallback line"},
	}, NewRoundRobinSelector())

	if got := pool.Pick("no-such-category"); got != "fallback line" {
		t.Errorf("got %q, want default pool entry", got)
	}
}

func TestRandomSelectorStaysInPool(t *testing.T) {
	pool := NewFallbackPool(DefaultFallbackPools(), NewRandomSelector(42))

	members := map[string]bool{}
	for _, s := range DefaultFallbackPools()["anxious"] {
		members[s] = true
	}
	for range 20 {
		if got := pool.Pick("anxious"); !members[got] {
			t.Fatalf("pick %q not in anxious pool", got)
		}
	}
}

func TestTemplateMatchNormalizes(t *testing.T) {
	set := DefaultTemplates()

	if _, ok := set.Match("  Guided Journaling  "); !ok {
		t.Error("expected match for padded mixed-case phrase")
	}
	if _, ok := set.Match("something never templated"); ok {
		t.Error("unexpected template match")
	}
}

func TestDefaultPoolsCoverToneCategories(t *testing.T) {
	pools := DefaultFallbackPools()
	for _, category := range []string{
		"stressed", "relationship", "anxious", "happy", "grateful",
		"stuck", "help", "greeting", "existential", "default",
	} {
		if len(pools[category]) == 0 {
			t.Errorf("category %q has no fallback responses", category)
		}
	}
	if len(DefaultHintPools()["default"]) == 0 {
		t.Error("hint pools missing default category")
	}
}
