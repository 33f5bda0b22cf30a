package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithTabWidth sets how many space advances a tab occupies.
func WithTabWidth(width int) Option {
	return func(b *Buffer) {
		if width > 0 {
			b.tabWidth = width
		}
	}
}

// WithMetrics sets the layout metrics.
func WithMetrics(m Metrics) Option {
	return func(b *Buffer) {
		if m != nil {
			b.metrics = m
		}
	}
}
