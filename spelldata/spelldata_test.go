package spelldata

import "testing"

func TestLookup_Exact(t *testing.T) {
	table := Default()

	spell, key, ok := table.Lookup("Fireball")
	if !ok {
		t.Fatal("fireball not found")
	}
	if key != "fireball" {
		t.Errorf("key = %q", key)
	}
	if spell.Damage != "8d6" || spell.Type != "fire" {
		t.Errorf("spell = %+v", spell)
	}
	if spell.AoE == nil || spell.AoE.Size != 20 || spell.AoE.Type != "sphere" {
		t.Errorf("AoE = %+v", spell.AoE)
	}
}

func TestLookup_Miss(t *testing.T) {
	table := Default()
	if _, _, ok := table.Lookup("summon lunch"); ok {
		t.Error("unknown spell resolved")
	}
	if _, _, ok := table.Lookup(""); ok {
		t.Error("empty name resolved")
	}
	if _, _, ok := table.Lookup("123/|0"); ok {
		t.Error("pure noise resolved")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Fireball", "fireball"},
		{"fireba11", "fireball"},
		{"c0ne of c0ld", "coneofcold"},
		{"magic missi/e", "magicmissile"},
		{"e|dritch b|ast", "eldritchblast"},
		{"Hold  Person!", "holdperson"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestLookup_FuzzyRoundTrip corrupts every 'l' and 'o' in every table key
// with the optical confusion set (l -> 1 or /, o -> 0) one character at a
// time, and requires resolution to recover the original key.
func TestLookup_FuzzyRoundTrip(t *testing.T) {
	table := Default()
	corruptions := map[rune][]rune{
		'l': {'1', '/'},
		'o': {'0'},
	}

	for key := range table {
		runes := []rune(key)
		for i, r := range runes {
			subs, ok := corruptions[r]
			if !ok {
				continue
			}
			for _, sub := range subs {
				corrupted := make([]rune, len(runes))
				copy(corrupted, runes)
				corrupted[i] = sub

				_, resolved, ok := table.Lookup(string(corrupted))
				if !ok {
					t.Errorf("Lookup(%q) failed, want %q", string(corrupted), key)
					continue
				}
				if resolved != key {
					t.Errorf("Lookup(%q) = %q, want %q", string(corrupted), resolved, key)
				}
			}
		}
	}
}
