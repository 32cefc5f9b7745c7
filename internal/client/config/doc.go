// Package config loads runtime configuration for the uploader.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. JSON file selected via -c or -config, config.json by default. The
//     file is required.
//  3. Environment variables, with a .env file in the working directory
//     filling in unset ones.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-u string   Canvas instance URL
//	-t string   window title
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "canvas_url": "https://school.instructure.com",
//	  "window_title": "Canvas Content Uploader",
//	  "icon_path": "icon.png",
//	  "log_level": "info"
//	}
//
// Environment variables: CCU_CANVAS_URL, CCU_WINDOW_TITLE, CCU_ICON_PATH,
// CCU_LOG_LEVEL.
package config
