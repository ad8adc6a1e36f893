//go:build gojson

package benchmarks_test

import (
	"github.com/reoring/jsonbytes"
	drv "github.com/reoring/jsonbytes/source/gojson"
)

func init() {
	jsonbytes.SetJSONDriver(drv.Driver())
}
