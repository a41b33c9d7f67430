package branchjoin_test

import (
	"testing"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/neamatmim/prepack/branchjoin"
)

func TestJoinMapsUnionsKeysPreservingM1Order(t *testing.T) {
	m1 := sequencedmap.New[string, int]()
	m1.Set("a", 1)
	m1.Set("b", 2)

	m2 := sequencedmap.New[string, int]()
	m2.Set("b", 20)
	m2.Set("c", 30)

	var order []string
	out := branchjoin.JoinMaps(m1, m2, func(k string, v1 int, ok1 bool, v2 int, ok2 bool) int {
		order = append(order, k)
		return v1 + v2
	})

	wantOrder := []string{"a", "b", "c"}
	if len(order) != len(wantOrder) {
		t.Fatalf("expected %d reconciler calls, got %d: %v", len(wantOrder), len(order), order)
	}
	for i, k := range wantOrder {
		if order[i] != k {
			t.Errorf("expected key %d to be %q, got %q", i, k, order[i])
		}
	}

	if v, ok := out.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1 (only in m1), got %d ok=%v", v, ok)
	}
	if v, ok := out.Get("b"); !ok || v != 22 {
		t.Errorf("expected b=22 (2+20), got %d ok=%v", v, ok)
	}
	if v, ok := out.Get("c"); !ok || v != 30 {
		t.Errorf("expected c=30 (only in m2), got %d ok=%v", v, ok)
	}
}

func TestJoinMapsNilInputsAreEmpty(t *testing.T) {
	out := branchjoin.JoinMaps[string, int](nil, nil, func(k string, v1 int, ok1 bool, v2 int, ok2 bool) int {
		t.Fatalf("reconciler should never be called for two nil maps")
		return 0
	})
	for range out.All() {
		t.Fatalf("expected an empty result map")
	}
}

func TestJoinMapsOneNilInput(t *testing.T) {
	m1 := sequencedmap.New[string, int]()
	m1.Set("a", 1)

	out := branchjoin.JoinMaps[string, int](m1, nil, func(k string, v1 int, ok1 bool, v2 int, ok2 bool) int {
		if ok2 {
			t.Errorf("ok2 must be false when the second map is nil")
		}
		return v1
	})
	if v, ok := out.Get("a"); !ok || v != 1 {
		t.Errorf("expected a=1, got %d ok=%v", v, ok)
	}
}
