package engine

import (
	"go.uber.org/zap"

	sceneruntime "github.com/wippyai/scene-runtime"
	"github.com/wippyai/scene-runtime/config"
	"github.com/wippyai/scene-runtime/gpu"
)

// Option configures an Engine.
type Option func(*options)

type options struct {
	cfg       *config.Config
	gl        gpu.GL
	logger    *zap.Logger
	allocator sceneruntime.Allocator
}

// WithConfig sets the render job capacity and pick format. Defaults come
// from config.Default.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithGL sets the context all rendering goes through. Required.
func WithGL(gl gpu.GL) Option {
	return func(o *options) { o.gl = gl }
}

// WithLogger replaces the package logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithAllocator sets where instance memory and attribute strings live.
// memory.OS is used by default; memory.Heap suits scenes whose code is Go.
func WithAllocator(a sceneruntime.Allocator) Option {
	return func(o *options) { o.allocator = a }
}
