package app

import (
	"github.com/treykane/cli-mindmap/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// It is tagged with the component "app". The engine reports user-facing
// failures itself; this logger records problems of the terminal layer:
// unreadable keymap files, conflicting bindings and help rendering
// failures. Output goes to stderr or MINDMAP_LOG_FILE so it never mixes
// with the Bubble Tea screen.
var appLog = logging.New("app")
