// Package oas2sls generates Serverless Framework function configuration
// from OpenAPI (Swagger) documents.
//
// The work is split across a few packages:
//
//   - parser: decode OpenAPI 2.0 and 3.x documents into an ordered model
//   - loader: locate and parse the input documents
//   - serverless: derive services, functions and HTTP events, then render them
//   - oaserrors: typed errors shared by all packages
//
// The oas2sls command wraps these packages for the shell and as an MCP
// server. This package only carries build metadata.
package oas2sls
