// Package widgets provides the few widgets the composition layer needs to
// exercise both backends.
//
// Every widget here implements both view.NativeRenderer and
// view.DeclarativeRenderer, so view.MakeNative decides per construction which
// backend builds it. Layout widgets materialize their children through the
// same selector, which lets a native-only child sit inside a declarative
// column and the other way round.
//
// # Widget Construction
//
// Struct literals are canonical. Layout helpers exist for ergonomics:
//
//	col := widgets.ColumnOf(8,
//	    widgets.NewLabel(ctx, "title", titles),
//	    widgets.Padding{Margin: compose.Automatic, Child: body},
//	)
//	root := view.MakeNative(ctx, col)
//
// Children are view.Renderer values implementing at least one tier.
package widgets
