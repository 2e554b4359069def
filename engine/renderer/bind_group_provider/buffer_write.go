package bind_group_provider

// BufferWrite describes one queued uniform upload: Data is written into the buffer bound at
// Binding on Provider, starting at Offset. Writes are collected on the tick goroutine and
// flushed by the render goroutine before the next frame is encoded.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
