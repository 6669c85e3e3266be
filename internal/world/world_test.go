package world

import "testing"

func TestCreateEntityAssignsSequentialIDsAndDefaultLiveness(t *testing.T) {
	w := New()
	a := w.CreateEntity("alpha")
	b := w.CreateEntity("bravo")

	if a != 0 || b != 1 {
		t.Fatalf("expected sequential IDs 0,1; got %d,%d", a, b)
	}
	if !w.IsAlive(a) || !w.IsAlive(b) {
		t.Fatalf("newly created entities must be Alive by default")
	}
	if w.Name(a) != "alpha" || w.Name(b) != "bravo" {
		t.Errorf("name lookup mismatch: %q, %q", w.Name(a), w.Name(b))
	}
}

func TestMissingComponentReturnsNilNotPanic(t *testing.T) {
	w := New()
	id := w.CreateEntity("lonely")

	if w.Transform(id) != nil {
		t.Errorf("expected nil Transform for entity with none attached")
	}
	if w.Interceptor(id) != nil {
		t.Errorf("expected nil InterceptorTag for entity with none attached")
	}
	if w.IsBallistic(id) {
		t.Errorf("expected IsBallistic false for entity with no BallisticTag")
	}
}

func TestQueriesReturnAscendingIDOrder(t *testing.T) {
	w := New()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		ids = append(ids, w.CreateEntity("e"))
	}
	for _, id := range ids {
		w.AddBallisticTag(id)
	}

	got := w.Ballistics()
	if len(got) != len(ids) {
		t.Fatalf("expected %d ballistics, got %d", len(ids), len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i-1] >= got[i] {
			t.Fatalf("expected strictly ascending IDs, got %v", got)
		}
	}
}

func TestAliveBallisticsExcludesNonAliveAndNonBallistic(t *testing.T) {
	w := New()
	alive := w.CreateEntity("alive-bm")
	w.AddBallisticTag(alive)

	dead := w.CreateEntity("dead-bm")
	w.AddBallisticTag(dead)
	w.Liveness(dead).State = Impacted

	notBallistic := w.CreateEntity("interceptor")

	got := w.AliveBallistics()
	if len(got) != 1 || got[0] != alive {
		t.Fatalf("expected only %d, got %v", alive, got)
	}
	_ = notBallistic
}

func TestPropelledRequiresBothTransformAndPropulsion(t *testing.T) {
	w := New()
	onlyTransform := w.CreateEntity("t-only")
	w.AddTransform(onlyTransform, &Transform{})

	both := w.CreateEntity("both")
	w.AddTransform(both, &Transform{})
	w.AddPropulsionMass(both, &PropulsionMass{})

	got := w.Propelled()
	if len(got) != 1 || got[0] != both {
		t.Fatalf("expected only %d, got %v", both, got)
	}
}
