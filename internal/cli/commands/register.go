package commands

func init() {
	Register(&Command{Name: "init", Description: "build or recover a project's index", Run: RunInit})
	Register(&Command{Name: "index", Aliases: []string{"refresh"}, Description: "run one more indexing pass over an existing index", Run: RunIndex})
	Register(&Command{Name: "search", Aliases: []string{"query"}, Description: "run a ranked filename/full-text search", Run: RunSearch})
	Register(&Command{Name: "check", Description: "classify the project's index health without mutating it", Run: RunCheck})
	Register(&Command{Name: "reindex", Description: "rebuild the index from scratch and atomically replace the live one", Run: RunReindex})
	Register(&Command{Name: "version", Description: "print the build version", Run: RunVersion})
	Register(&Command{Name: "help", Description: "show usage", Run: RunHelp})
}
