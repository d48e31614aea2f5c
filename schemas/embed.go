// Package schemas holds the JSON Schemas for user-supplied configuration
// documents.
package schemas

import "embed"

// FS contains every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS

// HouseStyle is the file name of the house style schema.
const HouseStyle = "house_style.schema.json"
