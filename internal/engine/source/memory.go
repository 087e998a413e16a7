package source

// MemorySource is a ByteSource over an in-memory buffer.
type MemorySource struct {
	data []byte
}

// NewMemorySource wraps data. The slice is not copied.
func NewMemorySource(data []byte) *MemorySource {
	return &MemorySource{data: data}
}

// Len returns the buffer length.
func (m *MemorySource) Len() int64 {
	return int64(len(m.data))
}

// ReadAt returns a copy of up to maxLen bytes starting at offset.
func (m *MemorySource) ReadAt(offset int64, maxLen int) ([]byte, error) {
	if offset < 0 || offset >= int64(len(m.data)) || maxLen <= 0 {
		return []byte{}, nil
	}
	end := min(offset+int64(maxLen), int64(len(m.data)))
	out := make([]byte, end-offset)
	copy(out, m.data[offset:end])
	return out, nil
}

// Bytes returns the underlying buffer.
func (m *MemorySource) Bytes() []byte {
	return m.data
}
