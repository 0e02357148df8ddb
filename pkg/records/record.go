// Package records reads, validates and writes the JSON game records exchanged
// with the tes3conv converter.
package records

import (
	stdjson "encoding/json"
	"strconv"
)

// Record types handled specially by this tool.
const (
	TypeHeader    = "Header"
	TypeLandscape = "Landscape"
)

// KnownTypes lists every record type the converter emits, in file order.
var KnownTypes = []string{
	"Header",
	"GameSetting",
	"GlobalVariable",
	"Class",
	"Faction",
	"Race",
	"Sound",
	"SoundGen",
	"Skill",
	"MagicEffect",
	"Script",
	"Region",
	"StartScript",
	"Birthsign",
	"LandscapeTexture",
	"Spell",
	"Static",
	"Door",
	"MiscItem",
	"Weapon",
	"Container",
	"Creature",
	"Bodypart",
	"Light",
	"Enchanting",
	"Npc",
	"Armor",
	"Clothing",
	"RepairItem",
	"Activator",
	"Apparatus",
	"Lockpick",
	"Probe",
	"Ingredient",
	"Book",
	"Alchemy",
	"LeveledItem",
	"LeveledCreature",
	"Cell",
	"Landscape",
	"PathGrid",
	"Dialogue",
	"DialogueInfo",
}

var knownTypeSet = func() map[string]bool {
	set := make(map[string]bool, len(KnownTypes))
	for _, t := range KnownTypes {
		set[t] = true
	}
	return set
}()

// IsKnownType reports whether t is one of KnownTypes.
func IsKnownType(t string) bool {
	return knownTypeSet[t]
}

// Record is one JSON game record. Fields this tool does not understand are
// kept as decoded and written back unchanged.
type Record map[string]interface{}

// Type returns the "type" field, or "" if it is missing or not a string.
func (r Record) Type() string {
	t, _ := r.str("type")
	return t
}

// ID returns the "id" field.
func (r Record) ID() (string, bool) {
	return r.str("id")
}

// Name returns the "name" field.
func (r Record) Name() (string, bool) {
	return r.str("name")
}

func (r Record) str(key string) (string, bool) {
	s, ok := r[key].(string)
	return s, ok
}

// toInt64 accepts the integer shapes a record can hold: json.Number from
// parsed files and native integers from records built in code.
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case stdjson.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil || f != float64(int64(f)) {
				return 0, false
			}
			return int64(f), true
		}
		return i, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		if n != float64(int64(n)) {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case stdjson.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
