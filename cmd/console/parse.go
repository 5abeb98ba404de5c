package main

import (
	"fmt"
	"strings"

	"github.com/jwebster45206/dialogue-engine/pkg/sentence"
	"github.com/jwebster45206/dialogue-engine/pkg/world"
)

// filler words stripped before matching descriptions.
var filler = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "at": {}, "please": {},
}

// parseCommand turns a typed line into a structured request from user
// to agent. The grammar is deliberately small:
//
//	go <direction> | go to <place>
//	get <description> [from <place>]
//	drop <description>
//	look <description>
//	open | close <description>
//	change <property> of <description> to <value>
//	is <description> <value-or-attribute>?
func parseCommand(w *world.World, user, agent *world.Entity, line string) (*sentence.Statement, error) {
	words := tokenize(line)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	verb, rest := words[0], words[1:]

	switch verb {
	case "go", "walk":
		if len(rest) == 0 {
			return nil, fmt.Errorf("go where?")
		}
		if rest[0] == "to" {
			place, err := findPlace(w, strip(rest[1:]))
			if err != nil {
				return nil, err
			}
			return sentence.Request(user, agent, sentence.VerbGo).WithLoc(world.In(place)), nil
		}
		if !isDirection(rest[0]) {
			return nil, fmt.Errorf("unknown direction %q", rest[0])
		}
		return sentence.Request(user, agent, sentence.VerbGo).WithDir(rest[0]), nil

	case "get", "take":
		descWords, locWords := splitAt(rest, "from")
		obj, err := describe(w, strip(descWords))
		if err != nil {
			return nil, err
		}
		req := sentence.Request(user, agent, sentence.VerbGet).WithObject(obj)
		if locWords != nil {
			place, err := findPlace(w, strip(locWords))
			if err != nil {
				return nil, err
			}
			req = req.WithLoc(world.In(place))
		}
		return req, nil

	case "drop":
		obj, err := describe(w, strip(rest))
		if err != nil {
			return nil, err
		}
		return sentence.Request(user, agent, sentence.VerbDrop).WithObject(obj), nil

	case "look", "examine":
		obj, err := describe(w, strip(rest))
		if err != nil {
			return nil, err
		}
		return sentence.Request(user, agent, sentence.VerbLook).WithObject(obj), nil

	case "open", "close":
		obj, err := describe(w, strip(rest))
		if err != nil {
			return nil, err
		}
		v := sentence.VerbOpen
		if verb == "close" {
			v = sentence.VerbClose
		}
		return sentence.Request(user, agent, v).WithObject(obj), nil

	case "change":
		// change <key> of <description> to <value>
		rest = strip(rest)
		if len(rest) < 4 {
			return nil, fmt.Errorf("change what to what?")
		}
		key := rest[0]
		if !isChangeable(key) {
			return nil, fmt.Errorf("%q is not a changeable property", key)
		}
		if rest[1] != "of" {
			return nil, fmt.Errorf("expected: change %s of <thing> to <value>", key)
		}
		descWords, valWords := splitAt(rest[2:], "to")
		if len(valWords) == 0 {
			return nil, fmt.Errorf("change it to what?")
		}
		obj, err := describe(w, strip(descWords))
		if err != nil {
			return nil, err
		}
		var val any
		if len(valWords) == 1 {
			val = valWords[0]
		} else {
			val = valWords
		}
		return sentence.Request(user, agent, sentence.VerbChange).
			WithObject(obj).WithChange(key, val), nil

	case "is":
		rest = strip(rest)
		if len(rest) < 2 {
			return nil, fmt.Errorf("is what what?")
		}
		pred := rest[len(rest)-1]
		obj, err := describe(w, rest[:len(rest)-1])
		if err != nil {
			return nil, err
		}
		for _, attr := range w.Index.Attributes {
			if attr == pred {
				return sentence.Question(user, agent, obj, "", nil, attr), nil
			}
		}
		if key := featureKeyOf(w, pred); key != "" {
			return sentence.Question(user, agent, obj, key, pred, ""), nil
		}
		return nil, fmt.Errorf("don't know what %q means", pred)
	}

	return nil, fmt.Errorf("unrecognized command %q", verb)
}

// describe resolves words to a player by name, or builds an abstract
// description from recognized feature values and type words.
func describe(w *world.World, words []string) (*world.Entity, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("describe what?")
	}
	if len(words) == 1 {
		for _, p := range w.Players {
			name, _ := p.Properties[world.PropName].(string)
			nick, _ := p.Properties[world.PropNickname].(string)
			if strings.EqualFold(name, words[0]) || strings.EqualFold(nick, words[0]) {
				return p, nil
			}
		}
	}

	desc := world.NewAbstractEntity()
	var typeWords []string
	for _, word := range words {
		switch {
		case indexedValue(w, world.PropColor, word):
			desc.Properties[world.PropColor] = word
		case indexedValue(w, world.PropSize, word):
			desc.Properties[world.PropSize] = word
		case indexedValue(w, world.PropMaterial, word):
			desc.Properties[world.PropMaterial] = word
		default:
			typeWords = append(typeWords, word)
		}
	}
	if len(typeWords) == 1 {
		desc.Properties[world.PropType] = typeWords[0]
	} else if len(typeWords) > 1 {
		desc.Properties[world.PropType] = typeWords
	}
	if len(desc.Properties) == 0 {
		return nil, fmt.Errorf("could not make sense of %q", strings.Join(words, " "))
	}
	return desc, nil
}

// findPlace matches words against the describing properties of places.
func findPlace(w *world.World, words []string) (*world.Entity, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("which place?")
	}
	for _, place := range w.Places() {
		if matchesWords(place, words) {
			return place, nil
		}
	}
	return nil, fmt.Errorf("no place called %q", strings.Join(words, " "))
}

func matchesWords(e *world.Entity, words []string) bool {
	var feats []string
	for _, v := range e.Features() {
		switch fv := v.(type) {
		case string:
			feats = append(feats, strings.ToLower(fv))
		case []string:
			for _, s := range fv {
				feats = append(feats, strings.ToLower(s))
			}
		}
	}
	for _, word := range words {
		found := false
		for _, f := range feats {
			if f == word {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func indexedValue(w *world.World, key, word string) bool {
	for _, v := range w.Index.PropertyValues[key] {
		if s, ok := v.(string); ok && s == word {
			return true
		}
	}
	return false
}

// featureKeyOf finds the describing property a value belongs to.
func featureKeyOf(w *world.World, word string) string {
	for _, key := range world.FeatureKeys {
		if indexedValue(w, key, word) {
			return key
		}
	}
	return ""
}

func isDirection(word string) bool {
	for _, d := range world.Directions {
		if d == word {
			return true
		}
	}
	return false
}

func isChangeable(key string) bool {
	for _, k := range world.ChangeableProps {
		if k == key {
			return true
		}
	}
	return false
}

func tokenize(line string) []string {
	line = strings.ToLower(strings.TrimSpace(line))
	line = strings.TrimRight(line, "?!.")
	return strings.Fields(line)
}

func strip(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, skip := filler[w]; !skip {
			out = append(out, w)
		}
	}
	return out
}

// splitAt splits words at the first occurrence of sep. The second
// return is nil when sep is absent.
func splitAt(words []string, sep string) ([]string, []string) {
	for i, w := range words {
		if w == sep {
			return words[:i], words[i+1:]
		}
	}
	return words, nil
}
