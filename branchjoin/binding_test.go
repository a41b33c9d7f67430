package branchjoin_test

import (
	"testing"

	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/neamatmim/prepack/branchjoin"
	"github.com/neamatmim/prepack/internal/testrealm"
)

func bindingFactory(r *testrealm.Realm) branchjoin.BindingConditionalFactory {
	return r.BindingFactory()
}

func TestJoinBindingsNoLeakJoinsValue(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	b := &branchjoin.Binding{Name: "x"}

	m1 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()
	m1.Set(b, branchjoin.BindingEntry{Value: testrealm.V(1)})
	m2 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()
	m2.Set(b, branchjoin.BindingEntry{Value: testrealm.V(2)})

	g1, g2, out := branchjoin.JoinBindings(r, cond, &testrealm.Gen{}, m1, &testrealm.Gen{}, m2, bindingFactory(r))

	if !g1.IsEmpty() || !g2.IsEmpty() {
		t.Fatalf("expected no generator rewrite when leak flags agree")
	}
	entry, ok := out.Get(b)
	if !ok {
		t.Fatalf("expected binding entry present")
	}
	if entry.HasLeaked {
		t.Errorf("expected HasLeaked false")
	}
	abs, ok := entry.Value.(testrealm.Abstract)
	if !ok {
		t.Fatalf("expected joined Abstract value, got %T", entry.Value)
	}
	if abs.A != branchjoin.Value(testrealm.V(1)) || abs.B != branchjoin.Value(testrealm.V(2)) {
		t.Errorf("joined value lost a branch's payload: %+v", abs)
	}
}

func TestJoinBindingsLeakAsymmetryCompensatesUnleakedSide(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	b := &branchjoin.Binding{Name: "x"}

	m1 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()
	m1.Set(b, branchjoin.BindingEntry{Value: testrealm.V(7), HasLeaked: false})
	m2 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()
	m2.Set(b, branchjoin.BindingEntry{Value: testrealm.V(8), HasLeaked: true})

	g1, g2, out := branchjoin.JoinBindings(r, cond, &testrealm.Gen{}, m1, &testrealm.Gen{}, m2, bindingFactory(r))

	entry, ok := out.Get(b)
	if !ok {
		t.Fatalf("expected binding entry present")
	}
	if !entry.HasLeaked {
		t.Errorf("expected merged HasLeaked true once either side leaked")
	}
	if entry.Value != testrealm.Undefined {
		t.Errorf("expected a leaked binding's joined value to be undefined, got %v", entry.Value)
	}
	if !g1.IsEmpty() {
		t.Errorf("side 1 (unleaked) generator must not be rewritten")
	}
	gen2, ok := g2.(*testrealm.Gen)
	if !ok {
		t.Fatalf("expected *testrealm.Gen, got %T", g2)
	}
	entries := gen2.Entries()
	if len(entries) == 0 {
		t.Fatalf("expected side 2 (leaked) generator to gain a compensating assignment")
	}
	last := entries[len(entries)-1]
	if last != "assign(x=7)" {
		t.Errorf("expected compensating assignment of side 1's value, got %q", last)
	}
}

func TestJoinBindingsMissingSideFallsBackToCurrentBinding(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	b := &branchjoin.Binding{Name: "y"}
	r.SetCurrentBinding(b, branchjoin.BindingEntry{Value: testrealm.V(42)})

	m1 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()
	m1.Set(b, branchjoin.BindingEntry{Value: testrealm.V(1)})
	m2 := sequencedmap.New[*branchjoin.Binding, branchjoin.BindingEntry]()

	_, _, out := branchjoin.JoinBindings(r, cond, &testrealm.Gen{}, m1, &testrealm.Gen{}, m2, bindingFactory(r))

	entry, ok := out.Get(b)
	if !ok {
		t.Fatalf("expected binding entry present")
	}
	abs, ok := entry.Value.(testrealm.Abstract)
	if !ok {
		t.Fatalf("expected joined Abstract value, got %T", entry.Value)
	}
	if abs.B != branchjoin.Value(testrealm.V(42)) {
		t.Errorf("expected the missing side to fall back to the realm's current binding, got %v", abs.B)
	}
}
