package vault

import (
	"fmt"
	"os/exec"
	"strings"
)

// OpenInEditor opens a file in the given editor command, in the background.
// Returns false if no editor is configured or the spawn failed.
//
// A compound command like "open -a Cursor" is run via the shell so its
// arguments survive.
func OpenInEditor(editor, filePath string) bool {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		return false
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.Command("sh", "-c", editor+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editor, filePath)
	}

	if err := cmd.Start(); err != nil {
		fmt.Printf("Warning: failed to open editor '%s': %v\n", editor, err)
		return false
	}
	return true
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}
