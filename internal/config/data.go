package config

import "dualrain/internal/surface"

// ConfigData stores predefined color themes and word sets.
type ConfigData struct {
	ColorThemes map[string]surface.Color
	WordSets    map[string][]string
}

// DefaultConfigData is the built-in set of themes and word pools.
var DefaultConfigData = ConfigData{
	ColorThemes: map[string]surface.Color{
		"green":  {R: 0, G: 255, B: 0},
		"amber":  {R: 255, G: 191, B: 0},
		"red":    {R: 255, G: 0, B: 0},
		"orange": {R: 255, G: 165, B: 0},
		"blue":   {R: 0, G: 150, B: 255},
		"purple": {R: 128, G: 0, B: 255},
		"cyan":   {R: 0, G: 255, B: 255},
		"pink":   {R: 255, G: 20, B: 147},
		"white":  {R: 255, G: 255, B: 255},
	},
	WordSets: map[string][]string{
		"matrix": {"ｱｲｳ", "ｴｵｶ", "ｷｸｹ", "ｺｻｼ", "ｽｾｿ", "ﾀﾁﾂ", "ﾃﾄﾅ", "ﾆﾇﾈ", "ﾉﾊﾋ", "ﾌﾍﾎ", "ﾏﾐﾑ", "ﾒﾓﾔ", "ﾕﾖﾗ", "ﾘﾙﾚ", "ﾛﾜﾝ"},
		"hacker": {"root", "sudo", "ssh", "kernel", "exploit", "daemon", "grep", "null", "0day", "shell", "proxy", "cipher"},
		"ascii":  {"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9"},
		"binary": {"0", "1", "01", "10", "0110", "1001"},
		"hex":    {"0x00", "0xFF", "0xDE", "0xAD", "0xBE", "0xEF", "0xCA", "0xFE"},
		"greek":  {"αβγ", "δεζ", "ηθι", "κλμ", "νξο", "πρσ", "τυφ", "χψω"},
		"kanji":  {"書道", "日本", "漢字", "文化", "侍", "忍者", "武士", "刀剣"},
		"dna":    {"ATCG", "GATTACA", "TTAGGG", "CCGG", "AT", "GC"},
		"arrows": {"←", "↑", "→", "↓", "↖", "↗", "↘", "↙"},
	},
}
