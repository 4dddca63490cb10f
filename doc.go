// Package kala is a retained-mode widget toolkit for [Ebitengine].
//
// Kala keeps windows, widgets, transforms, textures, shaders, fonts and input
// state in typed registries owned by an [Engine]. Each frame the application
// shell recomputes transforms, hit-tests the cursor against widgets, dispatches
// bound events and renders the widget list of every window in Z-order.
//
// # Quick start
//
// The simplest way to get started is [NewApp] and [Run], which create the
// main window, its input and the game loop:
//
//	app, err := kala.NewApp(kala.RunConfig{Title: "Demo", Width: 640, Height: 480})
//	if err != nil {
//		kala.ForceClose("Demo", err.Error())
//	}
//	box, _ := app.Engine.NewImage(kala.WidgetOptions{
//		WindowID: app.Window.ID(),
//		Pos:      kala.Vec2{X: 320, Y: 240},
//		Size:     kala.Vec2{X: 80, Y: 40},
//		Texture:  tex,
//	})
//	box.SetMouseEvent(func(ctx kala.EventContext) {
//		box.SetRGBColor(255, 0, 0)
//	}, kala.MouseButtonLeft, kala.ActionPressed)
//	kala.Run(app)
//
// For full control, drive an [Engine] yourself: call [Engine.UpdateTransforms],
// [Engine.PollWindowEvents] and [Engine.RenderWindow] from your own
// [ebiten.Game] with any [Backend].
//
// # Widgets
//
// A [Widget] is an image or text quad owned by one window. Widgets form trees
// through [Widget.AddChild]; a child's combined pose is derived from its
// parent's on every UpdateTransforms. Siblings never share a transform.
//
// Each transform has three poses: local (relative to the parent), world
// (an offset applied on top) and combined (the result). Mutators take a
// [PoseTarget] selecting which pose they change.
//
// # Events
//
// Bind callbacks with [Widget.SetMouseEvent], [Widget.SetKeyEvent],
// [Widget.SetHoverEvent] and [Widget.SetScrollEvent]. Only the topmost
// interactable widget under the cursor is hovered, and only it receives mouse
// button events; key bindings are window-wide. An optional [EventSink]
// (see kala/ecs for a [Donburi] adapter) receives every fired event.
//
// # Fonts
//
// Text widgets draw glyph meshes loaded from .kfont files (see kala/kfont).
// A [FontWatcher] reloads fonts when their files change on disk.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package kala
