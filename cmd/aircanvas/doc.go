// Package main hosts the aircanvas CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into session
// store operations, integrity inspections, timed replays (full-screen or
// plain), scripted studio demos, store watching, and configuration
// scaffolding. It centralizes configuration resolution, store discovery, and
// structured logging setup so subcommands can focus on user experience
// instead of wiring.
//
// Keep this package lean: add new functionality by extending the library
// packages first, then surface it through dedicated commands or flags here.
// That separation keeps the CLI declarative while the heavy lifting lives in
// reusable recording and playback components.
package main
