package window

import "go.uber.org/zap"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size. Non-positive values keep the default.
//
// Parameters:
//   - width: initial width in screen coordinates
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 {
			w.width = width
		}
		if height > 0 {
			w.height = height
		}
	}
}

// WithSizeLimits bounds interactive resizing.
//
// Parameters:
//   - minWidth, minHeight: smallest allowed size
//   - maxWidth, maxHeight: largest allowed size
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSizeLimits(minWidth, minHeight, maxWidth, maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
		w.minHeight = minHeight
		w.maxWidth = maxWidth
		w.maxHeight = maxHeight
	}
}

// WithLogger sets the logger for window lifecycle messages. Nil keeps the no-op logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) WindowBuilderOption {
	return func(w *engineWindow) {
		if logger != nil {
			w.logger = logger
		}
	}
}
