package sink

import (
	"encoding/json"

	"github.com/matzehuels/vischart/pkg/scene"
)

// RenderJSON returns the scene graph as indented JSON. The output decodes
// back into an equal scene with [scene.Decode].
func RenderJSON(sc *scene.Scene) ([]byte, error) {
	return json.MarshalIndent(sc, "", "  ")
}
