/*
Package config loads process configuration: AWS credentials, region and table
names from the environment (with .env support for development), and engine
tunables from an optional YAML settings file, e.g.:

	maxPartitions: 14
	fetchLimit: 50
	predicateTtl: 1h
	freshTtl: 30m
	mutePatternTtl: 30m
*/
package config
