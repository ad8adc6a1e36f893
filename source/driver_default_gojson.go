// Package source switches the process-wide JSON driver to go-json when
// imported for side effects:
//
//	import _ "github.com/reoring/jsonbytes/source"
package source

import (
	"github.com/reoring/jsonbytes"
	drvgojson "github.com/reoring/jsonbytes/source/gojson"
)

// init lives in a separate package to avoid an import cycle with the root.
func init() { jsonbytes.SetJSONDriver(drvgojson.Driver()) }
