// Package resource maps integer handles to host objects so that guests can
// refer to them.
//
// # Handle Table
//
//	table := resource.NewTable()
//	handle := table.Insert(typeID, value)
//	value, ok := table.Get(handle)
//	err := table.Drop(handle)
//
// Handle 0 is never issued. Freed handles are reused. A handle that is
// borrowed (Borrow / ReturnBorrow) cannot be dropped until every borrow is
// returned; Close drops everything regardless.
//
// # Factory Bindings
//
// Bind connects a factory policy and a host accountant to a table. Values
// created through the binding are destroyed through the same policy when
// their handle is dropped or the table is closed:
//
//	counters := resource.BindOwned(table, 1, factory.NewOwned(ctor), isolate)
//	h, err := counters.New(5)   // isolate external memory +8
//	err = counters.Drop(h)      // isolate external memory -8
//
// For shared policies every table entry is one holder of the reference
// count; Share adds another entry for the same value.
//
// # Observers
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s %d", e.Type, e.Handle)
//	}))
package resource
