// Package inkpad is the Composition Root for the Inkpad storage engine.
//
// It connects the note domain (collections, folders, asset references) with
// the storage adapters (sandboxed filesystem, privileged host channel,
// SQLite key-value store) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Inkpad treats the local device as the source of truth. Notes persist as
// individual JSON documents, image assets as opaque blobs, and the folder
// collection as a single ordered document. Content embeds assets by
// reference (inkpad://<filename>) rather than by payload, and a
// reference scan reclaims assets no note mentions anymore.
//
// Features:
//
//   - **Two Storage Backends**: a privileged host channel for desktop
//     shells and a sandboxed filesystem store for mobile, selected at
//     startup behind one gateway interface.
//   - **Crash Safe**: note writes are atomic (temp file + rename).
//   - **Self Healing**: asset deletes are fire-and-forget; the startup GC
//     pass backstops any delete that was lost.
//   - **Reactive**: the sandbox store can watch its note namespace and
//     emit debounced change events for external edits.
//   - **Extensible**: any backend implementing core.Store can be injected.
//
// Usage:
//
//	// Wire the app with functional options
//	app, err := inkpad.New(ctx,
//		inkpad.WithDataDir(dir),
//		inkpad.WithLogger(logger),
//	)
//
//	// Create a note
//	note, err := app.Collection.AddNote(ctx, inkpad.TypeText, "")
package inkpad
