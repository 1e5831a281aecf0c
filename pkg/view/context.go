// Package view defines the two rendering capabilities a widget may provide
// and selects which backend materializes it.
//
// A widget implements NativeRenderer, DeclarativeRenderer or both.
// MakeNative and MakeDeclarative pick the backend from the injected Context,
// reading its legacy flag on every call, and bridge between the two tiers
// with Leaf and Hosted where a widget only implements one of them.
package view

import (
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/go-drift/crossview/pkg/core"
	"github.com/go-drift/crossview/pkg/locale"
	"github.com/go-drift/crossview/pkg/platform"
)

// Context carries everything materialization depends on. It replaces
// process-wide globals so backend selection and locale resolution stay
// deterministic in tests.
type Context struct {
	Target platform.Target
	// Legacy forces the native path when set. It is read at render time only.
	Legacy  *core.Cell[bool]
	Locale  *locale.Broadcast
	Windows *WindowRegistry
	Logger  zerolog.Logger
}

// NewContext returns a context for target with legacy mode off, an English
// locale and a no-op logger.
func NewContext(target platform.Target) *Context {
	logger := zerolog.Nop()
	return &Context{
		Target:  target,
		Legacy:  core.NewCell(false),
		Locale:  locale.NewBroadcast(locale.NewSetting(language.AmericanEnglish)),
		Windows: NewWindowRegistry(logger),
		Logger:  logger,
	}
}

// WithLogger replaces the context's logger and the window registry's.
func (c *Context) WithLogger(logger zerolog.Logger) *Context {
	c.Logger = logger
	if c.Windows != nil {
		c.Windows.logger = logger
	}
	return c
}

// DeclarativeEnabled reports whether a widget offering both tiers would be
// materialized through the declarative backend right now.
func (c *Context) DeclarativeEnabled() bool {
	return c.Target.DeclarativeAvailable() && !c.legacy()
}

func (c *Context) legacy() bool {
	return c.Legacy != nil && c.Legacy.Value()
}
