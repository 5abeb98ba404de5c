package world

import "strings"

// FeatureKeys are the properties that tell one entity apart from
// another in a description, in rendering order.
var FeatureKeys = []string{PropName, PropSurname, PropNickname,
	PropSize, PropColor, PropMaterial, PropType}

// Features returns the entity's describing properties.
func (e *Entity) Features() map[string]any {
	feats := make(map[string]any)
	for _, k := range FeatureKeys {
		if v, ok := e.Properties[k]; ok {
			feats[k] = v
		}
	}
	return feats
}

func sameFeatures(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if !SameValue(b[k], v) {
			return false
		}
	}
	return true
}

// DescriptionConflict returns another concrete entity that would be
// indistinguishable from target by its describing properties, or nil.
// Used by the change action to reject mutations that would leave two
// objects without any distinguishing feature.
func (w *World) DescriptionConflict(target *Entity) *Entity {
	feats := target.Features()
	for _, o := range w.Objects {
		if o == target {
			continue
		}
		if sameFeatures(feats, o.Features()) {
			return o
		}
	}
	return nil
}

// DisplayName renders an entity reference for transcripts: its proper
// name when it has one, otherwise its describing properties joined in
// feature order ("the small red ball"). Abstract entities take the
// indefinite article.
func DisplayName(e *Entity) string {
	if e == nil {
		return "nothing"
	}
	if name, ok := e.Properties[PropName].(string); ok {
		return name
	}
	var parts []string
	for _, k := range []string{PropSize, PropColor, PropMaterial, PropType} {
		switch v := e.Properties[k].(type) {
		case string:
			parts = append(parts, v)
		case []string:
			parts = append(parts, v...)
		}
	}
	if len(parts) == 0 {
		parts = append(parts, "thing")
	}
	article := "the"
	if e.IsAbstract() {
		article = "a"
	}
	return article + " " + strings.Join(parts, " ")
}
