// Package dbconnect holds the shared types of the managed data service facades: the user
// record and cache entry values, the write acknowledgment, error codes, configuration and
// logging setup. The facades live in subpackages: aws_dynamodb (DynamoDB user table), redis
// (ElastiCache/Redis OSS endpoint) and cassandra (Amazon Keyspaces user table).
//
// Facades make a single attempt per call and return typed errors. Whether to log, retry or
// propagate a failure is left to the caller; see Retry for an opt-in helper.
package dbconnect
