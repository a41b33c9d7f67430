package branchjoin_test

import (
	"testing"

	"github.com/neamatmim/prepack/branchjoin"
	"github.com/neamatmim/prepack/internal/testrealm"
)

func TestJoinDescriptorBothNil(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	if got := branchjoin.JoinDescriptor(r, nil, nil, cond, r.Factory()); got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestJoinDescriptorEqualShapeDataMerges(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	writable := true
	d1 := &branchjoin.Descriptor{Value: testrealm.V(1), Writable: &writable}
	d2 := &branchjoin.Descriptor{Value: testrealm.V(2), Writable: &writable}

	got := branchjoin.JoinDescriptor(r, d1, d2, cond, r.Factory())
	if got.JoinCondition != nil {
		t.Fatalf("expected a direct merge (no JoinCondition), got %+v", got)
	}
	abs, ok := got.Value.(testrealm.Abstract)
	if !ok {
		t.Fatalf("expected joined value to be an Abstract conditional, got %T", got.Value)
	}
	if abs.A != branchjoin.Value(testrealm.V(1)) || abs.B != branchjoin.Value(testrealm.V(2)) {
		t.Errorf("merged value lost a branch's payload: %+v", abs)
	}
}

func TestJoinDescriptorDifferingShapeOpaqueJoin(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	d1 := &branchjoin.Descriptor{Value: testrealm.V(1)}
	d2 := &branchjoin.Descriptor{IsAccessor: true, Get: testrealm.V("getter")}

	got := branchjoin.JoinDescriptor(r, d1, d2, cond, r.Factory())
	if got.JoinCondition == nil {
		t.Fatalf("expected an opaque join carrying JoinCondition, got %+v", got)
	}
	if got.Descriptor1 != d1 || got.Descriptor2 != d2 {
		t.Errorf("opaque join must preserve both originals verbatim: %+v", got)
	}
}

func TestJoinDescriptorPresentOnOneSideOnlyMaterializesAgainstEmpty(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	d1 := &branchjoin.Descriptor{Value: testrealm.V(1)}

	got := branchjoin.JoinDescriptor(r, d1, nil, cond, r.Factory())
	if got == nil {
		t.Fatalf("expected a materialized descriptor, got nil")
	}
	abs, ok := got.Value.(testrealm.Abstract)
	if !ok {
		t.Fatalf("expected materialized value to be an Abstract conditional, got %T", got.Value)
	}
	if abs.A != branchjoin.Value(testrealm.V(1)) || abs.B != testrealm.Empty {
		t.Errorf("expected present branch's value against Empty, got %+v", abs)
	}
}

func TestJoinDescriptorAccessorPresentOnOneSideOpaque(t *testing.T) {
	r := testrealm.New()
	cond := testrealm.Unknown("cond")
	d2 := &branchjoin.Descriptor{IsAccessor: true, Get: testrealm.V("getter")}

	got := branchjoin.JoinDescriptor(r, nil, d2, cond, r.Factory())
	if got == nil || got.Descriptor2 != d2 || got.Descriptor1 != nil {
		t.Errorf("expected accessor-only-present case to preserve the original opaquely on side 2, got %+v", got)
	}
}

func TestEqualDescriptorsShapeOnly(t *testing.T) {
	w1, w2 := true, true
	d1 := &branchjoin.Descriptor{Value: testrealm.V(1), Writable: &w1}
	d2 := &branchjoin.Descriptor{Value: testrealm.V(999), Writable: &w2}
	if !branchjoin.EqualDescriptors(d1, d2) {
		t.Errorf("expected shape equality to ignore Value payload")
	}
}

func TestCloneDescriptorIsIndependent(t *testing.T) {
	d := &branchjoin.Descriptor{Value: testrealm.V(1)}
	clone := branchjoin.CloneDescriptor(d)
	clone.Value = testrealm.V(2)
	if d.Value != branchjoin.Value(testrealm.V(1)) {
		t.Errorf("mutating the clone must not affect the original")
	}
}
