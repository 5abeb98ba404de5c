package knowledge

import (
	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// checkProperty answers property assertions and property questions. A
// key observed with a different value answers false: describing
// properties are single-valued.
func checkProperty(b *Base, st *sentence.Statement) Truth {
	if st.Object == nil || st.PropKey == "" {
		return Unknown
	}
	if st.Form != sentence.FormProperty &&
		!(st.Form == sentence.FormQuestion && st.Attr == "") {
		return Unknown
	}
	truth := Unknown
	if cur, ok := st.Object.Seen.Props[st.PropKey]; ok {
		if world.SameValue(cur, st.PropVal) {
			truth = True
		} else {
			truth = False
		}
	} else {
		for _, v := range st.Object.Seen.PropsNeg[st.PropKey] {
			if world.SameValue(v, st.PropVal) {
				truth = False
				break
			}
		}
	}
	if truth != Unknown && st.Negated {
		if truth == True {
			return False
		}
		return True
	}
	return truth
}

func checkAttribute(b *Base, st *sentence.Statement) Truth {
	if st.Object == nil || st.Attr == "" {
		return Unknown
	}
	if st.Form != sentence.FormAttribute && st.Form != sentence.FormQuestion {
		return Unknown
	}
	truth := Unknown
	if _, ok := st.Object.Seen.Attrs[st.Attr]; ok {
		truth = True
	} else if _, ok := st.Object.Seen.AttrsNeg[st.Attr]; ok {
		truth = False
	}
	if truth != Unknown && st.Negated {
		if truth == True {
			return False
		}
		return True
	}
	return truth
}

func checkPermission(b *Base, st *sentence.Statement) Truth {
	if st.Form != sentence.FormPermission || st.Actor == nil {
		return Unknown
	}
	allowed, ok := b.permissions[st.Actor][st.Verb]
	if !ok {
		return Unknown
	}
	if allowed != st.Negated {
		return True
	}
	return False
}

// checkValidKey answers whether a value has been revealed as valid for
// a key. Absence of evidence is unknown, never false.
func checkValidKey(b *Base, st *sentence.Statement) Truth {
	if st.Form != sentence.FormValidKey {
		return Unknown
	}
	for _, v := range b.validValues[st.PropKey] {
		if world.SameValue(v, st.PropVal) {
			return True
		}
	}
	return Unknown
}
