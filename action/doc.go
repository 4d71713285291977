// Package action re-parses a record's free-text description into
// structured, executable game actions: attacks with to-hit bonuses, saving
// throws, damage dice, area-of-effect geometry, and resolved spell
// references. Parsing is a pure function of the description and the static
// spell table; nothing here is persisted, and the same description always
// yields the same actions. Safe for concurrent use.
package action
