package driven

// ChangeFeed broadcasts committed writes per table.
type ChangeFeed interface {
	// Subscribe returns a channel that receives a signal after any write to
	// one of the tables commits. Signals coalesce: a slow reader sees at
	// least one signal after the latest write. The returned func unsubscribes.
	Subscribe(tables ...string) (<-chan struct{}, func())

	// Notify records a committed write to the tables.
	Notify(tables ...string)

	// Version increases with every Notify call.
	Version() uint64
}
