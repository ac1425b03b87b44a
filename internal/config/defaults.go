package config

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"initialize_repository": true,
		"seed_config":           true,
		"export_environment":    true,
		// existing_dir_policy: strict fails when .c2rust is already present,
		// idempotent re-runs the remaining steps on it.
		"existing_dir_policy": "strict",
		"git_user_name":       "c2rust",
		"git_user_email":      "c2rust@localhost.localdomain",
		"debug":               false,
	}
}
