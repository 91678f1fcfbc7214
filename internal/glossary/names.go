package glossary

import (
	"sort"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/glossarymaker/internal/config"
)

// Lexicon reports whether a word is a known dictionary word
type Lexicon interface {
	Known(word string) bool
}

// surnames lists single and compound Korean surnames, duplicates allowed
var surnames = []string{
	"가", "간", "갈", "감", "강", "견", "경", "계", "고", "곡", "공", "곽", "관", "교",
	"구", "국", "궁", "궉", "권", "근", "금", "기", "길", "김", "나", "난", "남", "남궁",
	"낭", "내", "노", "뇌", "다", "단", "담", "당", "대", "도", "독", "독고", "돈", "동",
	"동방", "두", "등", "등정", "라", "란", "랑", "려", "로", "뢰", "류", "리", "림", "마",
	"만", "망절", "매", "맹", "명", "모", "목", "묵", "문", "미", "민", "박", "반", "방",
	"배", "백", "번", "범", "변", "보", "복", "봉", "부", "비", "빈", "빙", "사", "사공",
	"산", "삼", "상", "서", "서문", "석", "선", "선우", "설", "섭", "성", "소", "손", "송",
	"수", "순", "승", "시", "신", "심", "아", "안", "애", "야", "양", "어", "어금", "엄", "일",
	"여", "연", "염", "엽", "영", "예", "오", "옥", "온", "옹", "완", "왕", "요", "용",
	"우", "운", "원", "위", "유", "육", "윤", "은", "음", "이", "인", "임", "자", "장",
	"전", "점", "정", "제", "제갈", "조", "종", "좌", "주", "증", "지", "진", "차", "창",
	"채", "천", "초", "총", "최", "추", "탁", "탄", "탕", "태", "판", "팽", "편", "평",
	"포", "표", "풍", "피", "필", "하", "학", "한", "함", "해", "허", "현", "형", "호",
	"홍", "화", "황", "황목", "황보", "후", "강전", "개", "군", "누", "소봉", "십", "장곡",
	"저", "준", "검", "즙", "춘", "환", "흥", "고이", "명림", "목협", "부여", "사마",
	"소실", "수미", "을", "을지", "조미", "중실", "협", "흑치", "백리", "순우", "제오",
	"동각", "동곽", "동문", "단목", "공손", "공양", "공야", "공서", "관구", "곡량", "령호",
	"록리", "려구", "구양", "상관", "신도", "사도", "사구", "태사", "담대", "문인", "우마",
	"하후", "헌원", "양자", "악정", "종리", "축융", "자거", "좌인", "혁련",
}

// skillSuffixes mark martial arts and magic techniques
var skillSuffixes = []string{
	"무공", "신공", "마공", "검법", "도법", "창법", "보법", "대법", "진법", "술법", "절맥", "검형", "신장",
}

var singleSurnames, compoundSurnames []string

func init() {
	seen := make(map[string]struct{}, len(surnames))
	for _, s := range surnames {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if utf8.RuneCountInString(s) == 1 {
			singleSurnames = append(singleSurnames, s)
		} else {
			compoundSurnames = append(compoundSurnames, s)
		}
	}
	sort.SliceStable(compoundSurnames, func(i, j int) bool {
		return utf8.RuneCountInString(compoundSurnames[i]) > utf8.RuneCountInString(compoundSurnames[j])
	})
}

// IsClanName reports whether hangul is a surname followed by 가 or 세가
func IsClanName(hangul string) bool {
	if !strings.HasSuffix(hangul, "가") {
		return false
	}
	for _, group := range [][]string{compoundSurnames, singleSurnames} {
		for _, s := range group {
			if !strings.HasPrefix(hangul, s) {
				continue
			}
			rest := strings.TrimPrefix(hangul, s)
			if rest == "가" || rest == "세가" {
				return true
			}
		}
	}
	return false
}

// hasSkillSuffix reports whether hangul ends with a technique suffix
func hasSkillSuffix(hangul string) bool {
	for _, suffix := range skillSuffixes {
		if strings.HasSuffix(hangul, suffix) {
			return true
		}
	}
	return false
}

// CorrectNames fixes categories of locally extracted entries
//
// Rules in priority order:
//   - a surname followed by 가 or 세가 is an organisation;
//   - a technique suffix makes the entry a skill;
//   - words known to lex are left as they are;
//   - 3 or 4 characters starting with a compound surname become a name;
//   - 2 or 3 characters starting with a single surname become a name when
//     the entry is uncategorised or misc and has no english.
//
// lex may be nil. The input slice is not modified.
func CorrectNames(nouns []Noun, lex Lexicon) []Noun {
	out := make([]Noun, len(nouns))
	copy(out, nouns)

	for i := range out {
		n := &out[i]

		if IsClanName(n.Hangul) {
			n.Category = config.CategoryOrganizations
			continue
		}
		if hasSkillSuffix(n.Hangul) {
			n.Category = config.CategorySkills
			continue
		}
		if lex != nil && lex.Known(n.Hangul) {
			continue
		}

		length := utf8.RuneCountInString(n.Hangul)
		if length == 3 || length == 4 {
			if startsWithAny(n.Hangul, compoundSurnames) {
				n.Category = config.CategoryNames
				continue
			}
		}

		uncategorised := n.Category == "" || n.Category == config.CategoryMisc
		if uncategorised && (length == 2 || length == 3) && n.English == "" {
			if startsWithAny(n.Hangul, singleSurnames) {
				n.Category = config.CategoryNames
			}
		}
	}

	return out
}

func startsWithAny(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// MapLocalCategory converts an entity label of the local model to a category
func MapLocalCategory(label string) string {
	switch strings.ToUpper(strings.TrimSpace(label)) {
	case "NAME":
		return config.CategoryNames
	case "TITLE":
		return config.CategoryTitles
	case "ORGANIZATION":
		return config.CategoryOrganizations
	case "SKILL":
		return config.CategorySkills
	case "ITEM":
		return config.CategoryItems
	}
	return config.CategoryMisc
}
