package config

// SampleConfig returns a fully commented configuration file
func SampleConfig() string {
	return `# Onyx configuration
#
# Search order (first match wins over later ones):
#   ./.onyx.yaml
#   ~/.config/onyx/config.yaml
#   /etc/onyx/config.yaml
# Every key can be overridden with an ONYX_* environment variable,
# e.g. ONYX_AI_MODEL or ONYX_TERMINAL_BOOT_SCALE.
version: "1.0"

ai:
  # gemini or openai (any OpenAI-compatible chat completions endpoint)
  provider: gemini
  model: gemini-3-flash-preview
  # Empty for the provider's public endpoint
  endpoint: ""
  # Leave empty to read $API_KEY
  api_key: ""
  timeout: 60s
  temperature: 0.7
  top_p: 0.9

terminal:
  # Multiplies the boot sequence delays; 0 boots instantly
  boot_scale: 1.0
  # Pause between a navigation command and its deep dive
  deep_dive_delay: 800ms
  # Discard a deep dive that settles after the user navigated again
  drop_stale_commentary: false
  # Replaces the built-in navigation commands when set
  # navigation:
  #   - label: Security
  #     command: run pentest_audit
  #     description: "Offensive security: We break in so the bad guys can't."
  #     view: security
  contact:
    operator: Cristian Acevedo
    phone: 651-717-5556
    email: cristian007@acevedoonyx.net

output:
  # Transcript format for onyx exec: text or json
  format: text
  # auto, always or never
  color_mode: auto
  emoji: true

logging:
  # debug, info, warn or error
  level: info
  # The full-screen console only logs when a file is set
  file: ""
  json: false
`
}

// MinimalSampleConfig returns a configuration with only the essential settings
func MinimalSampleConfig() string {
	return `version: "1.0"

ai:
  provider: gemini
  model: gemini-3-flash-preview
  # Leave empty to read $API_KEY
  api_key: ""

terminal:
  boot_scale: 1.0
`
}
