// Package autoload registers every built-in model provider. Binaries that
// want the full registry blank-import this package:
//
//	import _ "github.com/rwxproject/agent-toolkit/pkg/llm/autoload"
//
// Importing an individual provider package instead keeps the binary's
// dependency surface down to the SDKs it actually uses.
package autoload

import (
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/anthropiclm"
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/gemini"
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/ollama"
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/openailm"
	_ "github.com/rwxproject/agent-toolkit/pkg/llm/placeholder"
)
