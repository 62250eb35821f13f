package hangul

// symbols lists characters outside the Hangul blocks that the engine corrupts
// when passed through unescaped.
var symbols = newRuneSet(
	'↔', '◁', '◀', '▷', '▶', '♤', '♠', '♡', '♥', '♧', '♣',
	'⊙', '◈', '▣', '◐', '◑', '▒', '▤', '▥', '▨', '▧', '▦',
	'▩', '♨', '☏', '☎', '☜', '☞', '↕', '↗', '↙', '↖', '↘',
	'♩', '♬', '㉿', '㈜', '㏇', '™', '㏂', '㏘', '＂', '＇', '∼',
	'ˇ', '˘', '˝', '¡', '˚', '˙', '˛', '¿', 'ː', '∏', '￦', '℉',
	'€', '㎕', '㎖', '㎗', 'ℓ', '㎘', '㎣', '㎤', '㎥', '㎦', '㎙',
	'㎚', '㎛', '㎟', '㎠', '㎢', '㏊', '㎍', '㏏', '㎈', '㎉', '㏈',
	'㎧', '㎨', '㎰', '㎱', '㎲', '㎳', '㎴', '㎵', '㎶', '㎷', '㎸',
	'㎀', '㎁', '㎂', '㎃', '㎄', '㎺', '㎻', '㎼', '㎽', '㎾', '㎿',
	'㎐', '㎑', '㎒', '㎓', '㎔', 'Ω', '㏀', '㏁', '㎊', '㎋', '㎌',
	'㏖', '㏅', '㎭', '㎮', '㎯', '㏛', '㎩', '㎪', '㎫', '㎬', '㏝',
	'㏐', '㏓', '㏃', '㏉', '㏜', '㏆', '┒', '┑', '┚', '┙', '┖',
	'┕', '┎', '┍', '┞', '┟', '┡', '┢', '┦', '┧', '┪', '┭',
	'┮', '┵', '┶', '┹', '┺', '┽', '┾', '╀', '╁', '╃', '╄',
	'╅', '╆', '╇', '╈', '╉', '╊', '┱', '┲', 'ⅰ', 'ⅱ', 'ⅲ',
	'ⅳ', 'ⅴ', 'ⅵ', 'ⅶ', 'ⅷ', 'ⅸ', 'ⅹ', '½', '⅓', '⅔', '¼',
	'¾', '⅛', '⅜', '⅝', '⅞', 'ⁿ', '₁', '₂', '₃', '₄', 'Ŋ',
	'đ', 'Ħ', 'Ĳ', 'Ŀ', 'Ł', 'Œ', 'Ŧ', 'ħ', 'ı', 'ĳ', 'ĸ', 'ŀ', 'ł',
	'œ', 'ŧ', 'ŋ', 'ŉ', '㉠', '㉡', '㉢', '㉣', '㉤', '㉥', '㉦',
	'㉧', '㉨', '㉩', '㉪', '㉫', '㉬', '㉭', '㉮', '㉯', '㉰', '㉱',
	'㉲', '㉳', '㉴', '㉵', '㉶', '㉷', '㉸', '㉹', '㉺', '㉻', '㈀',
	'㈁', '㈂', '㈃', '㈄', '㈅', '㈆', '㈇', '㈈', '㈉', '㈊', '㈋',
	'㈌', '㈍', '㈎', '㈏', '㈐', '㈑', '㈒', '㈓', '㈔', '㈕', '㈖',
	'㈗', '㈘', '㈙', '㈚', '㈛', 'ⓐ', 'ⓑ', 'ⓒ', 'ⓓ', 'ⓔ', 'ⓕ',
	'ⓖ', 'ⓗ', 'ⓘ', 'ⓙ', 'ⓚ', 'ⓛ', 'ⓜ', 'ⓝ', 'ⓞ', 'ⓟ', 'ⓠ',
	'ⓡ', 'ⓢ', 'ⓣ', 'ⓤ', 'ⓥ', 'ⓦ', 'ⓧ', 'ⓨ', 'ⓩ', '①', '②',
	'③', '④', '⑤', '⑥', '⑦', '⑧', '⑨', '⑩', '⑪', '⑫', '⑬',
	'⑭', '⑮', '⒜', '⒝', '⒞', '⒟', '⒠', '⒡', '⒢', '⒣', '⒤',
	'⒥', '⒦', '⒧', '⒨', '⒩', '⒪', '⒫', '⒬', '⒭', '⒮', '⒯',
	'⒰', '⒱', '⒲', '⒳', '⒴', '⒵', '⑴', '⑵', '⑶', '⑷', '⑸',
	'⑹', '⑺', '⑻', '⑼', '⑽', '⑾', '⑿', '⒀', '⒁', '⒂',
)

type runeSet map[rune]struct{}

func newRuneSet(rs ...rune) runeSet {
	s := make(runeSet, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

func (s runeSet) has(r rune) bool {
	_, ok := s[r]
	return ok
}
