package router

import "github.com/xpanvictor/vidquiz/pkg/assistant"

type AdapterPack struct {
	Completer assistant.Completer
	Name      string
}

type Mux struct {
	Default    string
	AdapterMap map[string]AdapterPack
}
