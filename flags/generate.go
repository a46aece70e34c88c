// Package flags holds build-time switches shared by the server and client builds.
//
// SERVER (compile.go) is true in server builds. Regenerate it with
// "go run github.com/fis/speedychess/cmd/flaggen false" for a client build.
package flags

//go:generate go run github.com/fis/speedychess/cmd/flaggen true
