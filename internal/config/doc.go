// Package config loads the whattocook configuration file.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/whattocook/config.toml
//  3. If the file does not exist, use Defaults
//  4. If the file exists but a field is missing or empty, use that field's default
//
// # Fields
//
//	meal_db_url              TheMealDB base URL
//	search_url               ingredient search API base URL
//	data_dir                 directory for the saved meal database and log
//	log_file                 log file path, default <data_dir>/whattocook.log
//	debug                    log every dispatch at debug level
//	request_timeout_seconds  per-request HTTP timeout
//	requests_per_second      outgoing request rate limit
//
// Paths may start with ~, which expands to the user's home directory.
package config
