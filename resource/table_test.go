package resource

import (
	"errors"
	"testing"

	bindErrors "github.com/wippyai/wasm-bind/errors"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if _, ok = table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct type failed")
	}
	if _, ok = table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}
	if typeID, ok := table.TypeID(h); !ok || typeID != 1 {
		t.Fatalf("TypeID = %d, %v", typeID, ok)
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove should fail")
	}
}

func TestTable_InvalidHandles(t *testing.T) {
	table := NewTable()

	for _, h := range []Handle{0, 1, 99} {
		if _, ok := table.Get(h); ok {
			t.Errorf("Get(%d) should fail on empty table", h)
		}
		err := table.Drop(h)
		if !errors.Is(err, &bindErrors.Error{Phase: bindErrors.PhaseResource, Kind: bindErrors.KindNotFound}) {
			t.Errorf("Drop(%d) = %v, want not found", h, err)
		}
	}
}

func TestTable_HandleReuse(t *testing.T) {
	table := NewTable()

	h1 := table.Insert(1, "a")
	h2 := table.Insert(1, "b")
	if h1 == h2 {
		t.Fatal("handles must be distinct")
	}

	table.Remove(h1)
	h3 := table.Insert(1, "c")
	if h3 != h1 {
		t.Errorf("expected freed handle %d to be reused, got %d", h1, h3)
	}
	if v, _ := table.Get(h3); v != "c" {
		t.Errorf("reused handle holds %v", v)
	}
	if table.Len() != 2 {
		t.Errorf("Len = %d, want 2", table.Len())
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	table.Remove(h)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}

	table.Unsubscribe(obs)
	table.Insert(1, "test2")
	if len(obs.events) != 2 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_ObserverFunc(t *testing.T) {
	table := NewTable()
	var types []string
	table.Subscribe(ObserverFunc(func(e Event) {
		types = append(types, e.Type.String())
	}))

	h := table.Insert(1, "x")
	table.Borrow(h)
	table.ReturnBorrow(h)
	table.Drop(h)

	want := []string{"created", "borrowed", "borrow-returned", "dropped"}
	if len(types) != len(want) {
		t.Fatalf("events = %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %s, want %s", i, types[i], want[i])
		}
	}
}

func TestTable_Borrow(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}
	h := table.Insert(1, d)

	if !table.Borrow(h) || !table.Borrow(h) {
		t.Fatal("Borrow failed")
	}

	err := table.Drop(h)
	if !errors.Is(err, &bindErrors.Error{Phase: bindErrors.PhaseResource, Kind: bindErrors.KindOutstandingBorrow}) {
		t.Fatalf("Drop of borrowed handle = %v, want outstanding borrow", err)
	}
	if d.count != 0 {
		t.Fatal("borrowed value must not be dropped")
	}

	table.ReturnBorrow(h)
	table.ReturnBorrow(h)
	if table.ReturnBorrow(h) {
		t.Fatal("ReturnBorrow without a borrow should fail")
	}

	if err := table.Drop(h); err != nil {
		t.Fatalf("Drop after returning borrows: %v", err)
	}
	if d.count != 1 {
		t.Fatalf("Drop() called %d times, want 1", d.count)
	}
	if table.Borrow(h) {
		t.Fatal("Borrow of dropped handle should fail")
	}
}

func TestTable_Clear(t *testing.T) {
	table := NewTable()

	table.Insert(1, "a")
	kept := table.Insert(1, "b")
	table.Insert(1, "c")
	table.Borrow(kept)

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 1 {
		t.Fatalf("Expected borrowed handle to survive Clear, Len() == %d", table.Len())
	}
	if _, ok := table.Get(kept); !ok {
		t.Fatal("borrowed handle missing after Clear")
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	a := &dropCounter{}
	b := &dropCounter{}
	table.Insert(1, a)
	hb := table.Insert(1, b)
	table.Borrow(hb)

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if a.count != 1 || b.count != 1 {
		t.Fatalf("Close should drop every value, got %d and %d", a.count, b.count)
	}
	if !table.Closed() {
		t.Fatal("Closed() = false after Close")
	}

	dropped := 0
	for _, e := range obs.events {
		if e.Type == EventDropped {
			dropped++
		}
	}
	if dropped != 2 {
		t.Errorf("got %d drop events, want 2", dropped)
	}

	if h := table.Insert(1, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
	if table.Len() != 0 {
		t.Fatalf("Len() = %d after Close", table.Len())
	}

	if err := table.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if a.count != 1 {
		t.Fatal("second Close dropped again")
	}
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, d)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}
