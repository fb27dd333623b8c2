package instance

import "go.uber.org/zap"

// Config holds configuration for instance creation
type Config struct {
	// Allocator provides the instance storage. nil means HeapAllocator.
	Allocator Allocator

	// Observer receives lifecycle events. nil means none.
	Observer Observer

	// Logger overrides the package logger for this instance.
	Logger *zap.Logger
}
