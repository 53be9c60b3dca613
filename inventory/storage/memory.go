package storage

// Memory is a KV held in process memory. Nothing survives the process.
type Memory struct {
	lockManager *LockManager
	entries     map[string]string
	closed      bool
}

// NewMemory creates an empty in-memory KV
func NewMemory() *Memory {
	return &Memory{
		lockManager: NewLockManager(),
		entries:     make(map[string]string),
	}
}

// Get implements KV.Get
func (m *Memory) Get(key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := m.lockManager.Execute(ReadOperation, func() error {
		if m.closed {
			return ErrClosed
		}
		value, found = m.entries[key]
		return nil
	})
	return value, found, err
}

// Set implements KV.Set
func (m *Memory) Set(key, value string) error {
	return m.lockManager.Execute(WriteOperation, func() error {
		if m.closed {
			return ErrClosed
		}
		m.entries[key] = value
		return nil
	})
}

// Close implements KV.Close
func (m *Memory) Close() error {
	return m.lockManager.Execute(WriteOperation, func() error {
		m.closed = true
		return nil
	})
}
