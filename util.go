package pbrt4

import (
	"encoding/json"
	"fmt"
)

// Pretty returns an indented JSON rendering of obj, falling back to the
// default formatting when obj cannot be marshaled.
func Pretty(obj interface{}) string {
	j, err := json.MarshalIndent(obj, "", "    ")
	if err != nil {
		return fmt.Sprint(obj)
	}
	return string(j)
}
