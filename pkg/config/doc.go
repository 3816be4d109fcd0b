// Package config loads typed configuration structs from environment
// variables (and an optional .env file), caching each type so repeated
// loads across packages see identical values.
package config
