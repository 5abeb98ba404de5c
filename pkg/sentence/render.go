package sentence

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// String renders the statement as transcript text.
func (s *Statement) String() string {
	return upperFirst(s.render())
}

func (s *Statement) render() string {
	switch s.Form {
	case FormRequest:
		return fmt.Sprintf("%s, %s.", world.DisplayName(s.Actor), renderAction(s))
	case FormAnd:
		parts := make([]string, 0, len(s.Parts))
		for _, p := range s.Parts {
			parts = append(parts, strings.TrimSuffix(p.render(), "."))
		}
		return strings.Join(parts, ", and then ") + "."
	case FormQuestion:
		if s.Attr != "" {
			return fmt.Sprintf("%s, is %s %s?", world.DisplayName(s.Actor),
				world.DisplayName(s.Object), s.Attr)
		}
		return fmt.Sprintf("%s, is the %s of %s %s?", world.DisplayName(s.Actor),
			s.PropKey, world.DisplayName(s.Object), renderValue(s.PropVal))
	case FormAttempt:
		return fmt.Sprintf("%s tries to %s.", world.DisplayName(s.Actor), renderAction(s))
	case FormDone:
		return renderDone(s)
	case FormBlocked:
		return renderBlocked(s)
	case FormProperty:
		neg := ""
		if s.Negated {
			neg = "not "
		}
		return fmt.Sprintf("the %s of %s is %s%s.", s.PropKey,
			world.DisplayName(s.Object), neg, renderValue(s.PropVal))
	case FormAttribute:
		neg := ""
		if s.Negated {
			neg = "not "
		}
		return fmt.Sprintf("%s is %s%s.", world.DisplayName(s.Object), neg, s.Attr)
	case FormContents:
		if len(s.Items) == 0 {
			return fmt.Sprintf("%s holds nothing.", world.DisplayName(s.Object))
		}
		names := make([]string, 0, len(s.Items))
		for _, it := range s.Items {
			names = append(names, world.DisplayName(it))
		}
		return fmt.Sprintf("%s holds %s.", world.DisplayName(s.Object), joinAnd(names))
	case FormPermission:
		neg := ""
		if s.Negated {
			neg = "not "
		}
		return fmt.Sprintf("%s is %sallowed to %s.", world.DisplayName(s.Actor), neg, s.Verb)
	case FormValidKey:
		return fmt.Sprintf("%s is a %s.", renderValue(s.PropVal), s.PropKey)
	case FormSay:
		return fmt.Sprintf("%s: %s", world.DisplayName(s.Speaker), s.Text)
	}
	return ""
}

func renderAction(s *Statement) string {
	switch s.Verb {
	case VerbGo:
		if s.Dir != "" {
			return "go " + s.Dir
		}
		return "go " + renderLoc(s.Loc)
	case VerbGet, VerbDrop, VerbLook:
		verb := string(s.Verb)
		if s.Verb == VerbLook {
			verb = "look at"
		}
		out := fmt.Sprintf("%s %s", verb, world.DisplayName(s.Object))
		if s.Loc != nil {
			out += " " + renderLoc(s.Loc)
		}
		return out
	case VerbOpen, VerbClose:
		return fmt.Sprintf("%s %s", s.Verb, world.DisplayName(s.Object))
	case VerbChange:
		return fmt.Sprintf("change the %s of %s to %s", s.PropKey,
			world.DisplayName(s.Object), renderValue(s.PropVal))
	}
	return string(s.Verb)
}

func renderDone(s *Statement) string {
	actor := world.DisplayName(s.Actor)
	switch s.Verb {
	case VerbGo:
		return fmt.Sprintf("%s goes %s.", actor, renderLoc(s.Loc))
	case VerbGet:
		return fmt.Sprintf("%s gets %s.", actor, world.DisplayName(s.Object))
	case VerbDrop:
		return fmt.Sprintf("%s drops %s %s.", actor, world.DisplayName(s.Object), renderLoc(s.Loc))
	case VerbOpen:
		return fmt.Sprintf("%s opens %s.", actor, world.DisplayName(s.Object))
	case VerbClose:
		return fmt.Sprintf("%s closes %s.", actor, world.DisplayName(s.Object))
	case VerbLook:
		return fmt.Sprintf("%s looks at %s.", actor, world.DisplayName(s.Object))
	case VerbChange:
		return fmt.Sprintf("%s changes the %s of %s to %s.", actor, s.PropKey,
			world.DisplayName(s.Object), renderValue(s.PropVal))
	}
	return fmt.Sprintf("%s acts.", actor)
}

func renderBlocked(s *Statement) string {
	actor := world.DisplayName(s.Actor)
	subject := "it"
	if s.Cause != nil {
		subject = world.DisplayName(s.Cause)
	}
	if s.Reason == ReasonConflict {
		return fmt.Sprintf("%s can't %s because that conflicts with %s.",
			actor, s.Verb, subject)
	}
	return fmt.Sprintf("%s can't %s because %s is %s.", actor, s.Verb, subject, s.Reason)
}

func renderLoc(loc *world.Location) string {
	if loc == nil {
		return "somewhere"
	}
	return fmt.Sprintf("%s %s", loc.Prep, world.DisplayName(loc.Place))
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []string:
		return strings.Join(val, " ")
	case *world.Entity:
		return world.DisplayName(val)
	case nil:
		return "nothing"
	}
	return fmt.Sprintf("%v", v)
}

func joinAnd(parts []string) string {
	switch len(parts) {
	case 0:
		return "nothing"
	case 1:
		return parts[0]
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

func upperFirst(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
