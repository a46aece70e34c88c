// Package chesspb contains the protobuf messages exchanged by the chess server and client.
//
// Every message type gets a one-byte tag (the <Type>Msg constants in pbgen.go) in
// the order protoc-gen-go lists it, and NewMsg turns a received tag back into
// an empty message.
package chesspb

//go:generate protoc -I. --go_out=. --go_opt=paths=source_relative chess.proto
//go:generate go run github.com/fis/speedychess/cmd/msgtaggen -in chess.pb.go -out pbgen.go
