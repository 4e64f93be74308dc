package guidelines

import _ "embed"

// Response-voice guidance for agents drafting return replies. Served
// verbatim; the evaluation pipeline never reads it.

//go:embed guidelines.txt
var text string

func Text() string {
	return text
}
