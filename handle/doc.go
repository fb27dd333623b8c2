// Package handle maps small integer handles to owned instances.
//
// A Table takes ownership of instances on Insert and gives out a Handle that
// can be stored or passed where a pointer cannot:
//
//	table := handle.NewTable()
//	h, err := table.Insert(instance.New(foo))
//
//	inst, ok := table.Get(h)
//	inst, ok = table.GetTyped(h, foo) // false for any other class
//
//	table.Remove(h) // closes the instance
//	inst, ok = table.Detach(h) // or hand ownership back to the caller
//
// Handle 0 is never issued. Handles of removed entries are reused.
//
// Close closes every instance still in the table and makes later inserts
// fail with an access error wrapping errors.ErrClosed.
package handle
