// Package schemas embeds the JSON Schemas of the documents rfpgen reads and writes.
package schemas

import "embed"

// RFPDocument is the file name of the RFP document schema
const RFPDocument = "rfp_document.schema.json"

// Files holds every schema in this directory
//
//go:embed *.schema.json
var Files embed.FS
