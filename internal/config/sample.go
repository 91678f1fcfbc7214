package config

import (
	"fmt"
	"os"
)

// SampleFileName is the config file created by setup and sample-config
const SampleFileName = ".glossarymaker.yaml"

// SampleYAML is a commented example configuration
const SampleYAML = `# glossarymaker configuration
# Keys can also be set as GLOSSARYMAKER_<KEY> environment variables.

# Cloud credential. GEMINI_API_KEY / OPENAI_API_KEY take priority.
api_key: ""
provider: gemini          # gemini, openai or ollama
model_name: gemini-2.5-flash

raws_folder: raws
nouns_json_file: nouns.json
reference_file: ""        # optional .xlsx or .txt glossary
output_excel: glossary.xlsx
error_log: error.txt

chapters_analyzed: 5
categorization_batch_size: 20
translation_batch_size: 15
hanja_guessing_batch_size: 15
max_retries: 10
retry_delay: 30s
batch_pause: 1s

hanja_identification: true
local_model: false
guess_hanja: true
do_categorization: true
do_translation: true
simplified_chinese_conversion: true

genre: murim              # murim, rofan, modern, game, westfan, dungeon

dict_api_key: ""          # krdict key for ambiguity checks (KRDICT_API_KEY)
dictionary:
  cache: dictionary_cache.db

ollama:
  host: http://localhost:11434
  model: qwen2.5:7b

openai:
  base_url: ""            # OpenAI compatible server, empty for api.openai.com
`

// WriteSample writes SampleYAML to path unless the file already exists
// It returns true when a new file was created.
func WriteSample(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(SampleYAML), 0644); err != nil {
		return false, fmt.Errorf("failed to write sample config: %w", err)
	}
	return true, nil
}
