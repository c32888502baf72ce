package history

// Adapter bridges Store to the core RunRecorder port.
type Adapter struct {
	store *Store
}

func NewAdapter(store *Store) *Adapter {
	return &Adapter{store: store}
}

func (a *Adapter) Record(run Run) (Run, error) {
	return a.store.Record(run)
}

func (a *Adapter) Recent(source string, limit int) ([]Run, error) {
	return a.store.Recent(source, limit)
}
