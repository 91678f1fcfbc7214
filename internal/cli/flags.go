package cli

// Flags holds the command-line flag values that are not bound to viper
type Flags struct {
	CfgFile  string
	LogLevel string
	EnvFile  string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		LogLevel: "info",
		EnvFile:  ".env",
	}
}

// boundFlag is a persistent flag whose value lands in a config key
type boundFlag struct {
	name  string
	short string
	key   string
	usage string
	kind  string
}

// boundFlags lists the flags that override config keys
var boundFlags = []boundFlag{
	{name: "raws", key: "raws_folder", usage: "Folder with numbered chapter files (1.txt, 2.txt, ...)", kind: "string"},
	{name: "output", short: "o", key: "output_excel", usage: "Output workbook (.xlsx)", kind: "string"},
	{name: "nouns", key: "nouns_json_file", usage: "Working glossary JSON file", kind: "string"},
	{name: "reference", key: "reference_file", usage: "Reference glossary (.xlsx or .txt) seeding the run", kind: "string"},
	{name: "error-log", key: "error_log", usage: "File receiving per-chunk failures", kind: "string"},
	{name: "provider", key: "provider", usage: "Provider: gemini, openai or ollama", kind: "string"},
	{name: "model", key: "model_name", usage: "Cloud model name", kind: "string"},
	{name: "genre", key: "genre", usage: "Genre: murim, rofan, modern, game, westfan, dungeon", kind: "string"},
	{name: "local", key: "local_model", usage: "Use the local model server instead of a cloud provider", kind: "bool"},
	{name: "chapters", key: "chapters_analyzed", usage: "Chapters sent per extraction request", kind: "int"},
	{name: "max-retries", key: "max_retries", usage: "Attempts per request", kind: "int"},
}
